package settings

import (
	"context"

	"github.com/enablehq/enable/models"
)

// RecordID is the fixed id of the single settings record.
const RecordID = "user-settings"

// Repository provides access to the single user-preferences record.
type Repository interface {
	// Get returns the settings record, or (nil, nil) when none was saved yet.
	Get(ctx context.Context) (*models.Settings, error)

	// Save upserts the settings record. The id is forced to RecordID.
	Save(ctx context.Context, s *models.Settings) error
}
