// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/noticeboard/internal/app/store/audit"
	"github.com/dalemusser/noticeboard/internal/app/system/htmlsanitize"
	"github.com/dalemusser/noticeboard/internal/app/system/ratelimit"
	"github.com/dalemusser/noticeboard/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations accepted for each Config field.
const (
	DestAll = "all" // MongoDB + zap
	DestDB  = "db"  // MongoDB only
	DestLog = "log" // zap only
	DestOff = "off" // disabled
)

// ValidDestination reports whether s is one of the accepted destinations.
func ValidDestination(s string) bool {
	switch s {
	case DestAll, DestDB, DestLog, DestOff:
		return true
	}
	return false
}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging of rejected teacher credentials.
	Auth string
	// Announcements controls logging of announcement create/update/delete.
	Announcements string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// previewRunes bounds the message preview stored with creation events.
const previewRunes = 80

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	return ratelimit.ClientIP(r)
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.AnnouncementID != "" {
		fields = append(fields, zap.String("announcement_id", event.AnnouncementID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so handlers and tests can run without auditing.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAnnouncements:
		setting = l.config.Announcements
	default:
		setting = DestAll
	}

	if setting == DestOff || setting == "" {
		return
	}

	if (setting == DestAll || setting == DestLog) && l.zapLog != nil {
		l.logToZap(event)
	}

	if (setting == DestAll || setting == DestDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil && l.zapLog != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// MissingCredential logs a management request that carried no teacher username.
func (l *Logger) MissingCredential(ctx context.Context, r *http.Request) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventAuthMissingCredential,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "no teacher username",
		Details: map[string]string{
			"method": r.Method,
			"path":   r.URL.Path,
		},
	})
}

// UnknownTeacher logs a management request naming a username with no teacher record.
func (l *Logger) UnknownTeacher(ctx context.Context, r *http.Request, attempted string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventAuthUnknownTeacher,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "teacher not found",
		Details: map[string]string{
			"attempted_username": attempted,
			"method":             r.Method,
			"path":               r.URL.Path,
		},
	})
}

// --- Announcement Events ---

// AnnouncementCreated logs a new announcement.
func (l *Logger) AnnouncementCreated(ctx context.Context, r *http.Request, actor string, ann models.Announcement) {
	details := map[string]string{
		"expires_at":      ann.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"message_preview": htmlsanitize.Preview(ann.Message, previewRunes),
	}
	if ann.StartsAt != nil {
		details["starts_at"] = ann.StartsAt.Format("2006-01-02T15:04:05Z07:00")
	}
	l.Log(ctx, audit.Event{
		Category:       audit.CategoryAnnouncements,
		EventType:      audit.EventAnnouncementCreated,
		Actor:          actor,
		AnnouncementID: ann.ID,
		IP:             getClientIP(r),
		UserAgent:      r.UserAgent(),
		Success:        true,
		Details:        details,
	})
}

// AnnouncementUpdated logs a patch; fields lists the patch keys that were sent.
func (l *Logger) AnnouncementUpdated(ctx context.Context, r *http.Request, actor, announcementID string, fields []string) {
	l.Log(ctx, audit.Event{
		Category:       audit.CategoryAnnouncements,
		EventType:      audit.EventAnnouncementUpdated,
		Actor:          actor,
		AnnouncementID: announcementID,
		IP:             getClientIP(r),
		UserAgent:      r.UserAgent(),
		Success:        true,
		Details: map[string]string{
			"fields_changed": strings.Join(fields, ","),
		},
	})
}

// AnnouncementDeleted logs a permanent removal.
func (l *Logger) AnnouncementDeleted(ctx context.Context, r *http.Request, actor, announcementID string) {
	l.Log(ctx, audit.Event{
		Category:       audit.CategoryAnnouncements,
		EventType:      audit.EventAnnouncementDeleted,
		Actor:          actor,
		AnnouncementID: announcementID,
		IP:             getClientIP(r),
		UserAgent:      r.UserAgent(),
		Success:        true,
	})
}

// String renders the config for startup logging.
func (c Config) String() string {
	return fmt.Sprintf("auth=%s announcements=%s", c.Auth, c.Announcements)
}
