// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	announcementsfeature "github.com/dalemusser/noticeboard/internal/app/features/announcements"
	auditlogfeature "github.com/dalemusser/noticeboard/internal/app/features/auditlog"
	errorsfeature "github.com/dalemusser/noticeboard/internal/app/features/errors"
	healthfeature "github.com/dalemusser/noticeboard/internal/app/features/health"
	"github.com/dalemusser/noticeboard/internal/app/store/audit"
	"github.com/dalemusser/noticeboard/internal/app/system/auditlog"
	"github.com/dalemusser/noticeboard/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. The router carries request ids, real
// client IPs, one log line per request and panic recovery, then mounts the
// health probe, the announcements API and the audit trail.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.NoticeboardMongoDatabase

	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:          appCfg.AuditLogAuth,
		Announcements: appCfg.AuditLogAnnouncements,
	})

	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.NoticeboardMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	limiter := ratelimit.New(appCfg.AuthFailLimit, appCfg.AuthFailWindow)
	announcementsHandler := announcementsfeature.NewHandler(db, auditLogger, limiter, logger)
	r.Mount("/announcements", announcementsfeature.Routes(announcementsHandler))

	// Read-only audit trail of announcement changes and rejected credentials
	auditHandler := auditlogfeature.NewHandler(db, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, announcementsHandler.RequireTeacher))

	return r, nil
}

// requestLogger writes one zap line per request once the response is done.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote_addr", r.RemoteAddr),
				}
				if status >= http.StatusInternalServerError {
					logger.Warn("request", fields...)
					return
				}
				logger.Info("request", fields...)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
