package validators_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/noticeboard/internal/app/system/validators"
	"github.com/dalemusser/noticeboard/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*mongo.Database, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db, ctx
}

func validAnnouncement() bson.M {
	now := time.Now().UTC()
	return bson.M{
		"_id":        "ann-1767323045678",
		"message":    "Exam tomorrow",
		"starts_at":  nil,
		"expires_at": now.Add(24 * time.Hour),
		"created_at": now,
		"updated_at": now,
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db, ctx := setup(t)

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db, ctx := setup(t)

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"announcements", "teachers", "audit_events"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestAnnouncementsValidator_ValidDocument(t *testing.T) {
	db, ctx := setup(t)

	if _, err := db.Collection("announcements").InsertOne(ctx, validAnnouncement()); err != nil {
		t.Errorf("Insert valid announcement failed: %v", err)
	}

	withStart := validAnnouncement()
	withStart["_id"] = "ann-1767323045679"
	withStart["starts_at"] = time.Now().UTC()
	if _, err := db.Collection("announcements").InsertOne(ctx, withStart); err != nil {
		t.Errorf("Insert announcement with starts_at failed: %v", err)
	}
}

func TestAnnouncementsValidator_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(bson.M)
	}{
		{"missing expires_at", func(d bson.M) { delete(d, "expires_at") }},
		{"blank message", func(d bson.M) { d["message"] = "   " }},
		{"empty message", func(d bson.M) { d["message"] = "" }},
		{"string expires_at", func(d bson.M) { d["expires_at"] = "2099-01-01" }},
		{"string starts_at", func(d bson.M) { d["starts_at"] = "tomorrow" }},
		{"bad id", func(d bson.M) { d["_id"] = "announcement-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, ctx := setup(t)
			doc := validAnnouncement()
			tt.mutate(doc)
			if _, err := db.Collection("announcements").InsertOne(ctx, doc); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTeachersValidator(t *testing.T) {
	db, ctx := setup(t)
	coll := db.Collection("teachers")

	if _, err := coll.InsertOne(ctx, bson.M{
		"_id":          "ms.frizzle",
		"display_name": "Valerie Frizzle",
		"role":         "teacher",
		"created_at":   time.Now().UTC(),
	}); err != nil {
		t.Errorf("Insert valid teacher failed: %v", err)
	}

	if _, err := coll.InsertOne(ctx, bson.M{"_id": "mr.ratburn", "role": "principal"}); err == nil {
		t.Error("expected validation error for unknown role")
	}
	if _, err := coll.InsertOne(ctx, bson.M{"_id": "mr.ratburn"}); err == nil {
		t.Error("expected validation error for missing role")
	}
}

func TestAuditEvents_NoValidator(t *testing.T) {
	db, ctx := setup(t)

	if _, err := db.Collection("audit_events").InsertOne(ctx, bson.M{"anything": "goes"}); err != nil {
		t.Errorf("Insert into audit_events failed: %v", err)
	}
}
