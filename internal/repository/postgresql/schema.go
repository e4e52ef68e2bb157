package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the attendance and leave tables when they do not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
