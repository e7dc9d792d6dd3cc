package validation

import (
	"testing"

	"github.com/evanofslack/pokerboard/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidate_CreatePlayerRequest(t *testing.T) {
	photoURL := "https://example.com/photo.jpg"
	badURL := "not a url"
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name        string
		req         models.CreatePlayerRequest
		expectError bool
		errContains string
	}{
		{
			name: "valid",
			req:  models.CreatePlayerRequest{Name: "Alice"},
		},
		{
			name: "valid with photo",
			req:  models.CreatePlayerRequest{Name: "Alice", PhotoURL: &photoURL},
		},
		{
			name:        "missing name",
			req:         models.CreatePlayerRequest{},
			expectError: true,
			errContains: "name is required",
		},
		{
			name:        "name too long",
			req:         models.CreatePlayerRequest{Name: string(longName)},
			expectError: true,
			errContains: "name must be at most 100 characters long",
		},
		{
			name:        "bad photo url",
			req:         models.CreatePlayerRequest{Name: "Alice", PhotoURL: &badURL},
			expectError: true,
			errContains: "photo_url must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_AddGameRequest(t *testing.T) {
	buyin := 100.0
	cashout := 250.0
	negative := -10.0

	tests := []struct {
		name        string
		req         models.AddGameRequest
		expectError bool
	}{
		{
			name: "valid",
			req: models.AddGameRequest{
				GameDate: models.NewDate(2024, 1, 5),
				Entries: []models.GameEntry{
					{PlayerID: uuid.New(), Included: true, BuyIn: &buyin, CashOut: &cashout},
				},
			},
		},
		{
			name: "no entries",
			req: models.AddGameRequest{
				GameDate: models.NewDate(2024, 1, 5),
				Entries:  []models.GameEntry{},
			},
			expectError: true,
		},
		{
			name: "negative buy-in",
			req: models.AddGameRequest{
				GameDate: models.NewDate(2024, 1, 5),
				Entries: []models.GameEntry{
					{PlayerID: uuid.New(), Included: true, BuyIn: &negative, CashOut: &cashout},
				},
			},
			expectError: true,
		},
		{
			name: "entry missing player id",
			req: models.AddGameRequest{
				GameDate: models.NewDate(2024, 1, 5),
				Entries: []models.GameEntry{
					{Included: true, BuyIn: &buyin, CashOut: &cashout},
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID(uuid.New().String()))
	assert.Error(t, ValidateUUID("not-a-uuid"))
	assert.Error(t, ValidateUUID(""))
}
