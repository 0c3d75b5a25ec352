// internal/cart/postgres_store.go
package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"storefront/internal/eventstore"

	"github.com/google/uuid"
)

const (
	aggregateType     = "cart"
	eventLineUpserted = "CartLineUpserted"
	maxUpsertAttempts = 3
)

// LineUpsertedEvent is journaled for every accepted quantity change.
type LineUpsertedEvent struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// postgresStore journals every change as an event and keeps cart_lines as the
// read model, both in one transaction.
type postgresStore struct {
	db         *sql.DB
	eventStore *eventstore.EventStore
}

// NewPostgresStore creates a Store on db.
func NewPostgresStore(db *sql.DB, es *eventstore.EventStore) Store {
	return &postgresStore{db: db, eventStore: es}
}

func (s *postgresStore) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	return queryLines(ctx, s.db, userID)
}

func (s *postgresStore) Upsert(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		lines, err := s.upsertOnce(ctx, userID, line)
		if err == nil {
			return lines, nil
		}
		if !eventstore.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("upsert cart line after %d attempts: %w", maxUpsertAttempts, lastErr)
}

func (s *postgresStore) upsertOnce(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	aggregateID := cartAggregateID(userID)
	version, err := s.eventStore.Version(ctx, tx, aggregateID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(LineUpsertedEvent{ProductID: line.ProductID, Qty: line.Qty})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	event := eventstore.Event{
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventLineUpserted,
		EventData:     data,
	}
	if err := s.eventStore.AppendTx(ctx, tx, aggregateID, aggregateType, version, []eventstore.Event{event}); err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	if line.Qty == 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM cart_lines
			WHERE user_id = $1 AND product_id = $2
		`, userID, line.ProductID)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_lines (user_id, product_id, qty)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, product_id) DO UPDATE
			SET qty = EXCLUDED.qty
		`, userID, line.ProductID, line.Qty)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update read model: %w", err)
	}

	lines, err := queryLines(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return lines, nil
}

// cartAggregateID names a user's cart journal, kept apart from the user's own.
func cartAggregateID(userID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(userID, []byte(aggregateType))
}

func queryLines(ctx context.Context, q eventstore.Queryer, userID uuid.UUID) ([]Line, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id, qty
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Qty); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	return lines, nil
}
