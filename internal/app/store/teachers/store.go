// internal/app/store/teachers/store.go
package teacherstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/noticeboard/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the MongoDB collection holding teacher accounts.
const Collection = "teachers"

var (
	// ErrNotFound is returned when no teacher has the requested username.
	ErrNotFound = errors.New("teacher not found")
	// ErrDuplicateUsername is returned when creating a teacher whose username is taken.
	ErrDuplicateUsername = errors.New("a teacher with this username already exists")
	errEmptyUsername     = errors.New("username is required")
	errBadRole           = errors.New(`role must be "teacher" or "admin"`)
)

// Store provides access to the teachers collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new teacher store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetByUsername loads a teacher by username. Returns ErrNotFound if absent.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.Teacher, error) {
	var t models.Teacher
	err := s.c.FindOne(ctx, bson.M{"_id": username}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Teacher{}, ErrNotFound
	}
	if err != nil {
		return models.Teacher{}, err
	}
	return t, nil
}

// Create inserts a teacher after trimming and validating fields.
func (s *Store) Create(ctx context.Context, t models.Teacher) (models.Teacher, error) {
	t.Username = strings.TrimSpace(t.Username)
	if t.Username == "" {
		return models.Teacher{}, errEmptyUsername
	}
	if t.Role == "" {
		t.Role = "teacher"
	}
	if t.Role != "teacher" && t.Role != "admin" {
		return models.Teacher{}, errBadRole
	}
	if strings.TrimSpace(t.DisplayName) == "" {
		t.DisplayName = t.Username
	}
	t.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Teacher{}, ErrDuplicateUsername
		}
		return models.Teacher{}, err
	}
	return t, nil
}

// EnsureExists creates a teacher with the given username unless one already
// exists. It reports whether a new record was written.
func (s *Store) EnsureExists(ctx context.Context, username string) (bool, error) {
	_, err := s.Create(ctx, models.Teacher{Username: username})
	if errors.Is(err, ErrDuplicateUsername) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
