package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/noticeboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// CreateTeacher inserts a teacher account with the given username.
func (f *Fixtures) CreateTeacher(ctx context.Context, username string) models.Teacher {
	f.t.Helper()

	teacher := models.Teacher{
		Username:    username,
		DisplayName: "Teacher " + username,
		Role:        "teacher",
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := f.db.Collection("teachers").InsertOne(ctx, teacher); err != nil {
		f.t.Fatalf("failed to create test teacher: %v", err)
	}
	return teacher
}

// CreateAnnouncement inserts an announcement directly, bypassing validation.
// created is used for both created_at and updated_at and to derive the id.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, message string, startsAt *time.Time, expiresAt, created time.Time) models.Announcement {
	f.t.Helper()

	created = created.UTC().Truncate(time.Millisecond)
	ann := models.Announcement{
		ID:        models.NewAnnouncementID(created),
		Message:   message,
		StartsAt:  startsAt,
		ExpiresAt: expiresAt.UTC().Truncate(time.Millisecond),
		CreatedAt: created,
		UpdatedAt: created,
	}
	if ann.StartsAt != nil {
		s := ann.StartsAt.UTC().Truncate(time.Millisecond)
		ann.StartsAt = &s
	}

	if _, err := f.db.Collection("announcements").InsertOne(ctx, ann); err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}
	return ann
}

// TimePtr returns a pointer to t, for optional timestamp fields.
func TimePtr(t time.Time) *time.Time {
	return &t
}
