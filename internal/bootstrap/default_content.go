package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/tonelab-collective/booking/internal/modules/service"
)

// EnsureDefaultContent seeds the site copy when the service starts. Existing keys
// are left untouched so admin edits survive restarts.
func EnsureDefaultContent(ctx context.Context, svc service.ContentService, log *zap.Logger) error {
	inserted, err := svc.EnsureDefaults(ctx)
	if err != nil {
		return err
	}
	if inserted > 0 {
		log.Sugar().Infow("default site content seeded", "entries", inserted)
	}
	return nil
}
