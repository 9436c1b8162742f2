// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/noticeboard/internal/app/store/audit"
	"github.com/dalemusser/noticeboard/internal/app/system/httpjson"
	"github.com/dalemusser/noticeboard/internal/app/system/timeouts"
	"github.com/dalemusser/noticeboard/internal/app/system/timeparse"
	"go.uber.org/zap"
)

// ServeList handles GET /audit. Any known teacher may read the trail; the
// credential has already been checked by the Routes middleware.
//
// Query parameters: announcement_id, actor, category, event_type, start, end
// (timestamps) and limit (1-500, default 100).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit.list")
	defer cancel()

	q := r.URL.Query()

	filter := audit.QueryFilter{
		Actor:          strings.TrimSpace(q.Get("actor")),
		AnnouncementID: strings.TrimSpace(q.Get("announcement_id")),
		Category:       strings.TrimSpace(q.Get("category")),
		EventType:      strings.TrimSpace(q.Get("event_type")),
	}

	var err error
	if filter.StartTime, err = optionalTime(q.Get("start")); err != nil {
		httpjson.Detail(w, http.StatusBadRequest, "Invalid datetime format")
		return
	}
	if filter.EndTime, err = optionalTime(q.Get("end")); err != nil {
		httpjson.Detail(w, http.StatusBadRequest, "Invalid datetime format")
		return
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			httpjson.Detail(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = int64(n)
	}

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.serverError(w, r, "failed to query audit events", err)
		return
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		views = append(views, toView(e))
	}
	httpjson.Write(w, http.StatusOK, views)
}

func optionalTime(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := timeparse.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	httpjson.Detail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
