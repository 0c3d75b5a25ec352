package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"valid", Product{ID: "p1", Name: "Basketball", Cost: 100, Rating: 5, Image: "https://i.imgur.com/lulqWzW.jpg"}, false},
		{"free and unrated", Product{ID: "p2", Cost: 0, Rating: 0}, false},
		{"missing id", Product{Name: "x"}, true},
		{"negative cost", Product{ID: "p3", Cost: -1}, true},
		{"rating above five", Product{ID: "p4", Rating: 6}, true},
		{"negative rating", Product{ID: "p5", Rating: -1}, true},
		{"bad image url", Product{ID: "p6", Image: "://nope"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidProduct), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAllStopsAtFirstFailure(t *testing.T) {
	err := ValidateAll([]Product{{ID: "ok"}, {ID: "bad", Cost: -5}, {}})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Contains(t, err.Error(), "bad")
}
