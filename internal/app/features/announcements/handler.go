// internal/app/features/announcements/handler.go
package announcements

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	announcementstore "github.com/dalemusser/noticeboard/internal/app/store/announcements"
	teacherstore "github.com/dalemusser/noticeboard/internal/app/store/teachers"
	"github.com/dalemusser/noticeboard/internal/app/system/auditlog"
	"github.com/dalemusser/noticeboard/internal/app/system/httpjson"
	"github.com/dalemusser/noticeboard/internal/app/system/ratelimit"
	"github.com/dalemusser/noticeboard/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies on Create and Update.
const maxBodyBytes = 64 << 10

// Handler serves the announcements JSON API.
// Limiter, when set, refuses management requests from a client IP that
// has sent too many unknown or missing credentials.
type Handler struct {
	Service *Service
	Audit   *auditlog.Logger
	Limiter *ratelimit.Limiter
	Log     *zap.Logger
}

// NewHandler constructs an announcements Handler backed by MongoDB.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		Service: NewService(announcementstore.New(db), teacherstore.New(db)),
		Audit:   audit,
		Limiter: limiter,
		Log:     logger,
	}
}

// throttle guards the credentialed routes.
func (h *Handler) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Limiter.Blocked(ratelimit.ClientIP(r)) {
			h.fail(w, r, ErrTooManyAttempts)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTeacher lets a request through only when teacher_username names a
// known teacher. Rejections are throttled, audited and reported exactly as
// on the announcement management routes.
func (h *Handler) RequireTeacher(next http.Handler) http.Handler {
	return h.throttle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "announcements.authenticate")
		defer cancel()

		if _, err := h.Service.Authenticate(ctx, teacherUsername(r)); err != nil {
			h.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

type deleteResponse struct {
	Message string `json:"message"`
}

func teacherUsername(r *http.Request) string {
	return r.URL.Query().Get("teacher_username")
}

// ListActive handles GET /announcements/active.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "announcements.list_active")
	defer cancel()

	items, err := h.Service.ListActive(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

// List handles GET /announcements.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "announcements.list_all")
	defer cancel()

	items, err := h.Service.ListAll(ctx, teacherUsername(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, items)
}

// Create handles POST /announcements.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "announcements.create")
	defer cancel()

	username := teacherUsername(r)

	var raw map[string]json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		h.failBody(ctx, w, r, username)
		return
	}
	message := fieldFrom(raw, "message")
	if message.NotText {
		h.failBody(ctx, w, r, username)
		return
	}
	startsAt := fieldFrom(raw, "starts_at")
	expiresAt := fieldFrom(raw, "expires_at")

	ann, err := h.Service.Create(ctx, username, CreateInput{
		Message:          message.Value,
		StartsAt:         startsAt.Value,
		ExpiresAt:        expiresAt.Value,
		StartsAtNotText:  startsAt.NotText,
		ExpiresAtNotText: expiresAt.NotText,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Audit.AnnouncementCreated(ctx, r, username, ann)
	httpjson.Write(w, http.StatusOK, ann)
}

// Update handles PUT /announcements/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "announcements.update")
	defer cancel()

	username := teacherUsername(r)
	id := chi.URLParam(r, "id")

	var raw map[string]json.RawMessage
	if err := decodeBody(w, r, &raw); err != nil {
		h.failBody(ctx, w, r, username)
		return
	}
	patch := Patch{
		Message:   fieldFrom(raw, "message"),
		StartsAt:  fieldFrom(raw, "starts_at"),
		ExpiresAt: fieldFrom(raw, "expires_at"),
	}

	ann, err := h.Service.Update(ctx, username, id, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Audit.AnnouncementUpdated(ctx, r, username, id, patch.Keys())
	httpjson.Write(w, http.StatusOK, ann)
}

// Delete handles DELETE /announcements/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "announcements.delete")
	defer cancel()

	username := teacherUsername(r)
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(ctx, username, id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Audit.AnnouncementDeleted(ctx, r, username, id)
	httpjson.Write(w, http.StatusOK, deleteResponse{Message: "Announcement deleted"})
}

// failBody reports an unreadable body. Unauthenticated callers get the
// credential failure instead so that 401 always wins over 400.
func (h *Handler) failBody(ctx context.Context, w http.ResponseWriter, r *http.Request, username string) {
	if _, err := h.Service.Authenticate(ctx, username); err != nil {
		h.fail(w, r, err)
		return
	}
	h.fail(w, r, ErrInvalidBody)
}

// fail writes err as a {"detail": ...} response. Credential failures are
// audited; internal failures are logged and hidden from the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := KindOf(err)
	detail := err.Error()

	switch kind {
	case KindUnauthorized:
		h.Limiter.Fail(ratelimit.ClientIP(r))
		if errors.Is(err, ErrAuthRequired) {
			h.Audit.MissingCredential(r.Context(), r)
		} else {
			h.Audit.UnknownTeacher(r.Context(), r, teacherUsername(r))
		}
	case KindInternal:
		h.Log.Error("announcements request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		detail = http.StatusText(http.StatusInternalServerError)
	}

	httpjson.Detail(w, httpStatus(kind), detail)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// fieldFrom reads one optional key of a request body.
func fieldFrom(raw map[string]json.RawMessage, key string) Field {
	v, ok := raw[key]
	if !ok {
		return Field{}
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return Null()
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return Field{Set: true, NotText: true}
	}
	return Value(s)
}
