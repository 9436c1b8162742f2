// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/noticeboard/internal/app/store/audit"
)

// maxLimit caps how many events one request may return.
const maxLimit = 500

// eventView is the JSON shape of one audit event.
type eventView struct {
	ID             string            `json:"id"`
	Timestamp      time.Time         `json:"timestamp"`
	Category       string            `json:"category"`
	EventType      string            `json:"event_type"`
	Actor          string            `json:"actor,omitempty"`
	AnnouncementID string            `json:"announcement_id,omitempty"`
	IP             string            `json:"ip"`
	Success        bool              `json:"success"`
	FailureReason  string            `json:"failure_reason,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

func toView(e audit.Event) eventView {
	return eventView{
		ID:             e.ID.Hex(),
		Timestamp:      e.Timestamp.UTC(),
		Category:       e.Category,
		EventType:      e.EventType,
		Actor:          e.Actor,
		AnnouncementID: e.AnnouncementID,
		IP:             e.IP,
		Success:        e.Success,
		FailureReason:  e.FailureReason,
		Details:        e.Details,
	}
}
