// internal/app/store/announcements/store.go
package announcementstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/noticeboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding announcements.
const Collection = "announcements"

// ErrNotFound is returned when no announcement has the requested id.
var ErrNotFound = errors.New("announcement not found")

// Store provides access to the announcements collection.
// Every method is a single MongoDB round trip.
type Store struct {
	c *mongo.Collection
}

// New creates a new announcement store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ActiveFilter selects announcements visible at now. A null or missing
// starts_at matches the {starts_at: null} clause.
func ActiveFilter(now time.Time) bson.M {
	return bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"starts_at": nil},
				bson.M{"starts_at": bson.M{"$lte": now}},
			}},
			bson.M{"expires_at": bson.M{"$gt": now}},
		},
	}
}

// ListActive returns announcements visible at now, oldest first.
func (s *Store) ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	return s.find(ctx, ActiveFilter(now), opts)
}

// ListAll returns every announcement, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	return s.find(ctx, bson.M{}, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Announcement, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Announcement, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one announcement. Returns ErrNotFound if it does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (models.Announcement, error) {
	var a models.Announcement
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Announcement{}, ErrNotFound
	}
	if err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// Insert stores a fully-populated announcement.
func (s *Store) Insert(ctx context.Context, a models.Announcement) error {
	_, err := s.c.InsertOne(ctx, a)
	return err
}

// Changes lists the fields an update writes. Nil pointers are left alone,
// except StartsAt, which is written (possibly as null) whenever SetStartsAt is true.
type Changes struct {
	Message     *string
	SetStartsAt bool
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	UpdatedAt   time.Time
}

func (c Changes) setDoc() bson.M {
	set := bson.M{"updated_at": c.UpdatedAt}
	if c.Message != nil {
		set["message"] = *c.Message
	}
	if c.SetStartsAt {
		set["starts_at"] = c.StartsAt
	}
	if c.ExpiresAt != nil {
		set["expires_at"] = *c.ExpiresAt
	}
	return set
}

// Update applies changes with a single $set and returns the updated document.
// Returns ErrNotFound if the announcement does not exist.
func (s *Store) Update(ctx context.Context, id string, changes Changes) (models.Announcement, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Announcement
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": changes.setDoc()}, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Announcement{}, ErrNotFound
	}
	if err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// Delete removes an announcement permanently.
// Returns ErrNotFound if nothing was deleted.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
