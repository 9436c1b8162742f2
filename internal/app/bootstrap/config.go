// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/noticeboard/internal/app/system/auditlog"
	"github.com/dalemusser/noticeboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the noticeboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, seed_teachers, etc.
//   - Environment variables: NOTICEBOARD_MONGO_URI, NOTICEBOARD_SEED_TEACHERS, etc.
//   - Command-line flags: --mongo_uri, --seed_teachers, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "noticeboard", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "Timeout for the initial MongoDB connect and ping"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Rejected credential logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_announcements", Default: "all", Desc: "Announcement change logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Credential throttling
	{Name: "auth_fail_limit", Default: 20, Desc: "Failed teacher credentials allowed per client IP per window (0 disables)"},
	{Name: "auth_fail_window", Default: "1m", Desc: "Window for auth_fail_limit"},

	// Teacher bootstrap
	{Name: "seed_teachers", Default: "", Desc: "Comma-separated teacher usernames to create on startup if missing"},

	// Request timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Store timeout for list and delete requests"},
	{Name: "timeout_medium", Default: "10s", Desc: "Store timeout for create and update requests"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, NOTICEBOARD_* for app) and
// command-line flags with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NOTICEBOARD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		AuditLogAuth:          appValues.String("audit_log_auth"),
		AuditLogAnnouncements: appValues.String("audit_log_announcements"),

		AuthFailLimit:  appValues.Int("auth_fail_limit"),
		AuthFailWindow: appValues.Duration("auth_fail_window", time.Minute),

		SeedTeachers: splitList(appValues.String("seed_teachers")),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
	}

	return coreCfg, appCfg, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format before any connection attempt and
// rejects unknown audit destinations and out-of-order pool sizes.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if appCfg.AuthFailLimit < 0 {
		return fmt.Errorf("auth_fail_limit must not be negative")
	}

	for key, v := range map[string]string{
		"audit_log_auth":          appCfg.AuditLogAuth,
		"audit_log_announcements": appCfg.AuditLogAnnouncements,
	} {
		if !auditlog.ValidDestination(v) {
			return fmt.Errorf("%s must be one of all, db, log, off (got %q)", key, v)
		}
	}

	return nil
}
