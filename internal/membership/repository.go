// internal/membership/repository.go
package membership

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"storefront/internal/eventstore"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository persists users and their credentials.
type Repository interface {
	Create(ctx context.Context, user *User, credential *Credential) error
	ByUsername(ctx context.Context, username string) (*User, *Credential, error)
}

type memoryRepository struct {
	mu          sync.RWMutex
	users       map[string]*User
	credentials map[uuid.UUID]*Credential
}

// NewMemoryRepository creates a Repository held in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		users:       make(map[string]*User),
		credentials: make(map[uuid.UUID]*Credential),
	}
}

func (r *memoryRepository) Create(ctx context.Context, user *User, credential *Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return ErrUsernameTaken
	}
	u, c := *user, *credential
	r.users[user.Username] = &u
	r.credentials[user.ID] = &c
	return nil
}

func (r *memoryRepository) ByUsername(ctx context.Context, username string) (*User, *Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, nil, ErrInvalidCredentials
	}
	user, cred := *u, *r.credentials[u.ID]
	return &user, &cred, nil
}

type postgresRepository struct {
	db         *sql.DB
	eventStore *eventstore.EventStore
}

// NewPostgresRepository creates a Repository on the users and credentials
// tables. Registrations are also journaled in the event store.
func NewPostgresRepository(db *sql.DB, es *eventstore.EventStore) Repository {
	return &postgresRepository{db: db, eventStore: es}
}

func (r *postgresRepository) Create(ctx context.Context, user *User, credential *Credential) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, username, created_at)
		VALUES ($1, $2, $3)
	`, user.ID, user.Username, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credentials (user_id, password_hash, salt)
		VALUES ($1, $2, $3)
	`, credential.UserID, credential.PasswordHash, credential.Salt)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}

	data, err := json.Marshal(UserRegisteredEvent{ID: user.ID, Username: user.Username})
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	event := eventstore.Event{
		AggregateID:   user.ID,
		AggregateType: "user",
		EventType:     "UserRegistered",
		EventData:     data,
	}
	if err := r.eventStore.AppendTx(ctx, tx, user.ID, "user", 0, []eventstore.Event{event}); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) ByUsername(ctx context.Context, username string) (*User, *Credential, error) {
	user := &User{}
	cred := &Credential{}
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.created_at, c.password_hash, c.salt
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE u.username = $1
	`, username).Scan(&user.ID, &user.Username, &user.CreatedAt, &cred.PasswordHash, &cred.Salt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("query user: %w", err)
	}
	cred.UserID = user.ID
	return user, cred, nil
}
