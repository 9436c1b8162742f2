// internal/app/features/announcements/service.go
package announcements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	announcementstore "github.com/dalemusser/noticeboard/internal/app/store/announcements"
	teacherstore "github.com/dalemusser/noticeboard/internal/app/store/teachers"
	"github.com/dalemusser/noticeboard/internal/app/system/timeparse"
	"github.com/dalemusser/noticeboard/internal/domain/models"
)

// Store is the persistence the Service needs. announcementstore.Store
// implements it against MongoDB.
type Store interface {
	ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error)
	ListAll(ctx context.Context) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (models.Announcement, error)
	Insert(ctx context.Context, a models.Announcement) error
	Update(ctx context.Context, id string, changes announcementstore.Changes) (models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// TeacherLookup resolves a username to a teacher record, returning
// teacherstore.ErrNotFound for unknown usernames.
type TeacherLookup interface {
	GetByUsername(ctx context.Context, username string) (models.Teacher, error)
}

// Service implements the announcement lifecycle. It holds no request state;
// all durable state lives in the Store.
type Service struct {
	store    Store
	teachers TeacherLookup
	now      func() time.Time
}

// NewService builds a Service over the given store and teacher lookup.
func NewService(store Store, teachers TeacherLookup) *Service {
	return &Service{store: store, teachers: teachers, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// stamp normalizes t to the UTC millisecond precision MongoDB stores.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// CreateInput carries the fields of a new announcement as sent by the client.
// An empty StartsAt or ExpiresAt means the field was not provided.
// StartsAtNotText and ExpiresAtNotText mark a value that was sent as a JSON
// number, bool, array or object; it fails as an invalid datetime.
type CreateInput struct {
	Message          string
	StartsAt         string
	ExpiresAt        string
	StartsAtNotText  bool
	ExpiresAtNotText bool
}

// Field is one optional value in a Patch. Set reports whether the client
// sent the key at all; Null reports an explicit null; NotText reports a
// value that is neither a string nor null.
type Field struct {
	Set     bool
	Null    bool
	NotText bool
	Value   string
}

// Value returns a Field holding s.
func Value(s string) Field { return Field{Set: true, Value: s} }

// Null returns a Field holding an explicit null.
func Null() Field { return Field{Set: true, Null: true} }

// Patch is a partial update. Only fields with Set are touched.
type Patch struct {
	Message   Field
	StartsAt  Field
	ExpiresAt Field
}

// Keys lists the patch fields that were sent, in a fixed order.
func (p Patch) Keys() []string {
	var keys []string
	if p.Message.Set {
		keys = append(keys, "message")
	}
	if p.StartsAt.Set {
		keys = append(keys, "starts_at")
	}
	if p.ExpiresAt.Set {
		keys = append(keys, "expires_at")
	}
	return keys
}

// Authenticate resolves the caller's teacher credential.
func (s *Service) Authenticate(ctx context.Context, username string) (models.Teacher, error) {
	if username == "" {
		return models.Teacher{}, ErrAuthRequired
	}
	t, err := s.teachers.GetByUsername(ctx, username)
	if errors.Is(err, teacherstore.ErrNotFound) {
		return models.Teacher{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Teacher{}, fmt.Errorf("look up teacher: %w", err)
	}
	return t, nil
}

// ListActive returns the announcements visible right now, oldest first.
// It needs no credential.
func (s *Service) ListActive(ctx context.Context) ([]models.Announcement, error) {
	items, err := s.store.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	return items, nil
}

// ListAll returns every announcement, newest first, regardless of window.
func (s *Service) ListAll(ctx context.Context, username string) ([]models.Announcement, error) {
	if _, err := s.Authenticate(ctx, username); err != nil {
		return nil, err
	}
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

// Create validates in and stores a new announcement.
func (s *Service) Create(ctx context.Context, username string, in CreateInput) (models.Announcement, error) {
	if _, err := s.Authenticate(ctx, username); err != nil {
		return models.Announcement{}, err
	}

	message, err := validMessage(in.Message)
	if err != nil {
		return models.Announcement{}, err
	}

	expiresAt, err := parseOptional(in.ExpiresAt, in.ExpiresAtNotText)
	if err != nil {
		return models.Announcement{}, err
	}
	if expiresAt == nil {
		return models.Announcement{}, ErrExpirationRequired
	}

	startsAt, err := parseOptional(in.StartsAt, in.StartsAtNotText)
	if err != nil {
		return models.Announcement{}, err
	}

	now := stamp(s.now())
	ann := models.Announcement{
		ID:        models.NewAnnouncementID(now),
		Message:   message,
		StartsAt:  startsAt,
		ExpiresAt: *expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, ann); err != nil {
		return models.Announcement{}, fmt.Errorf("insert announcement: %w", err)
	}
	return ann, nil
}

// Update applies p to the announcement with the given id. Every sent field
// is validated before anything is written; updated_at is refreshed even when
// the patch is empty.
func (s *Service) Update(ctx context.Context, username, id string, p Patch) (models.Announcement, error) {
	if _, err := s.Authenticate(ctx, username); err != nil {
		return models.Announcement{}, err
	}

	if _, err := s.store.GetByID(ctx, id); err != nil {
		return models.Announcement{}, storeErr("get announcement", err)
	}

	changes := announcementstore.Changes{UpdatedAt: stamp(s.now())}

	if p.Message.Set {
		if p.Message.NotText {
			return models.Announcement{}, ErrInvalidBody
		}
		if p.Message.Null {
			return models.Announcement{}, ErrMessageRequired
		}
		message, err := validMessage(p.Message.Value)
		if err != nil {
			return models.Announcement{}, err
		}
		changes.Message = &message
	}

	if p.StartsAt.Set {
		changes.SetStartsAt = true
		if p.StartsAt.NotText {
			return models.Announcement{}, ErrInvalidDatetime
		}
		if !p.StartsAt.Null {
			t, err := parse(p.StartsAt.Value)
			if err != nil {
				return models.Announcement{}, err
			}
			changes.StartsAt = &t
		}
	}

	if p.ExpiresAt.Set {
		if p.ExpiresAt.Null {
			return models.Announcement{}, ErrExpirationRequired
		}
		if p.ExpiresAt.NotText {
			return models.Announcement{}, ErrInvalidDatetime
		}
		t, err := parse(p.ExpiresAt.Value)
		if err != nil {
			return models.Announcement{}, err
		}
		changes.ExpiresAt = &t
	}

	updated, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return models.Announcement{}, storeErr("update announcement", err)
	}
	return updated, nil
}

// Delete permanently removes the announcement with the given id.
func (s *Service) Delete(ctx context.Context, username, id string) error {
	if _, err := s.Authenticate(ctx, username); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr("delete announcement", err)
	}
	return nil
}

// validMessage trims raw and rejects it when nothing is left. The trimmed
// text is stored as sent.
func validMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", ErrMessageRequired
	}
	return message, nil
}

// parse reads a client timestamp, mapping any failure to ErrInvalidDatetime.
func parse(raw string) (time.Time, error) {
	t, err := timeparse.Parse(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDatetime
	}
	return stamp(t), nil
}

// parseOptional treats an empty string as "not provided".
func parseOptional(raw string, notText bool) (*time.Time, error) {
	if notText {
		return nil, ErrInvalidDatetime
	}
	if raw == "" {
		return nil, nil
	}
	t, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, announcementstore.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
