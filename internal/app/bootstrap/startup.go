// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	teacherstore "github.com/dalemusser/noticeboard/internal/app/store/teachers"
	"github.com/dalemusser/noticeboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	cur := timeouts.Current()
	logger.Info("request timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium))

	return seedTeachers(ctx, deps, appCfg.SeedTeachers, logger)
}

// seedTeachers creates any listed teacher that does not exist yet.
// Existing records are left untouched.
func seedTeachers(ctx context.Context, deps DBDeps, usernames []string, logger *zap.Logger) error {
	if len(usernames) == 0 {
		return nil
	}
	store := teacherstore.New(deps.NoticeboardMongoDatabase)
	for _, username := range usernames {
		created, err := store.EnsureExists(ctx, username)
		if err != nil {
			return fmt.Errorf("seed teacher %q: %w", username, err)
		}
		if created {
			logger.Info("seeded teacher", zap.String("username", username))
		}
	}
	return nil
}
