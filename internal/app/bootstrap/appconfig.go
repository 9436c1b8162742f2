// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, CORS); everything here is
// specific to the announcements service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Maximum connections in the driver pool
	MongoMinPoolSize    uint64        // Connections kept open when idle
	MongoConnectTimeout time.Duration // Bound on the initial connect + ping

	// Audit logging destinations: "all", "db", "log" or "off"
	AuditLogAuth          string // rejected teacher credentials
	AuditLogAnnouncements string // announcement create/update/delete

	// Failed-credential throttling per client IP (limit 0 disables)
	AuthFailLimit  int
	AuthFailWindow time.Duration

	// Teacher usernames created at startup when missing
	SeedTeachers []string

	// Per-request store timeouts
	TimeoutShort  time.Duration // list and delete
	TimeoutMedium time.Duration // create and update
}
