// internal/domain/models/announcement.go
package models

import (
	"strconv"
	"time"
)

// AnnouncementIDPrefix starts every announcement _id.
const AnnouncementIDPrefix = "ann-"

// Announcement is a time-bounded message shown to the school.
//
// StartsAt is optional: a nil value means the announcement is eligible
// as soon as it exists. ExpiresAt is always set.
type Announcement struct {
	ID        string     `bson:"_id" json:"id"` // "ann-<unix millis at creation>"
	Message   string     `bson:"message" json:"message"`
	StartsAt  *time.Time `bson:"starts_at" json:"starts_at"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// ActiveAt reports whether the announcement is visible at instant now:
// its window has opened (or has no start) and it has not yet expired.
func (a Announcement) ActiveAt(now time.Time) bool {
	if a.StartsAt != nil && a.StartsAt.After(now) {
		return false
	}
	return a.ExpiresAt.After(now)
}

// NewAnnouncementID builds the _id for an announcement created at t.
func NewAnnouncementID(t time.Time) string {
	return AnnouncementIDPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}
