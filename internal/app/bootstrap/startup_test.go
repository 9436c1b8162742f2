package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/noticeboard/internal/app/store/audit"
	teacherstore "github.com/dalemusser/noticeboard/internal/app/store/teachers"
	"github.com/dalemusser/noticeboard/internal/app/system/timeouts"
	"github.com/dalemusser/noticeboard/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:              "mongodb://localhost:27017",
		MongoDatabase:         "noticeboard",
		MongoMaxPoolSize:      100,
		MongoMinPoolSize:      10,
		AuditLogAuth:          "all",
		AuditLogAnnouncements: "db",
		AuthFailLimit:         20,
		AuthFailWindow:        time.Minute,
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" ms.frizzle, mr.ratburn,,  ")
	if len(got) != 2 || got[0] != "ms.frizzle" || got[1] != "mr.ratburn" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Errorf("splitList(\"\") should be nil")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"empty uri", func(c *AppConfig) { c.MongoURI = "" }, true},
		{"empty database", func(c *AppConfig) { c.MongoDatabase = " " }, true},
		{"pool sizes reversed", func(c *AppConfig) { c.MongoMinPoolSize = 200 }, true},
		{"bad auth audit", func(c *AppConfig) { c.AuditLogAuth = "everywhere" }, true},
		{"empty announcement audit", func(c *AppConfig) { c.AuditLogAnnouncements = "" }, true},
		{"negative fail limit", func(c *AppConfig) { c.AuthFailLimit = -1 }, true},
		{"audit off", func(c *AppConfig) { c.AuditLogAuth = "off"; c.AuditLogAnnouncements = "log" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeedTeachers_CreatesMissingOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateTeacher(ctx, "ms.frizzle")

	core, logs := observer.New(zap.InfoLevel)
	deps := DBDeps{NoticeboardMongoDatabase: db}

	if err := seedTeachers(ctx, deps, []string{"ms.frizzle", "mr.ratburn"}, zap.New(core)); err != nil {
		t.Fatalf("seedTeachers failed: %v", err)
	}

	store := teacherstore.New(db)
	if _, err := store.GetByUsername(ctx, "mr.ratburn"); err != nil {
		t.Errorf("expected mr.ratburn to be seeded: %v", err)
	}
	got, err := store.GetByUsername(ctx, "ms.frizzle")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.DisplayName != existing.DisplayName || !got.CreatedAt.Equal(existing.CreatedAt) {
		t.Errorf("existing teacher was modified: %+v", got)
	}

	if n := logs.FilterMessage("seeded teacher").Len(); n != 1 {
		t.Errorf("expected 1 seeded teacher log, got %d", n)
	}

	// Running again creates nothing.
	if err := seedTeachers(ctx, deps, []string{"ms.frizzle", "mr.ratburn"}, zap.New(core)); err != nil {
		t.Fatalf("second seedTeachers failed: %v", err)
	}
	if n := logs.FilterMessage("seeded teacher").Len(); n != 1 {
		t.Errorf("expected no new seeded teacher logs, got %d total", n)
	}
}

func TestStartup_ConfiguresTimeouts(t *testing.T) {
	defer timeouts.Reset()

	cfg := validAppConfig()
	cfg.TimeoutShort = 3 * time.Second
	cfg.TimeoutMedium = 7 * time.Second

	if err := Startup(t.Context(), &config.CoreConfig{}, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	if timeouts.Short() != 3*time.Second || timeouts.Medium() != 7*time.Second {
		t.Errorf("timeouts = %+v", timeouts.Current())
	}
	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping changed to %v", timeouts.Ping())
	}
}

func TestBuildHandler_Routes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{NoticeboardMongoClient: db.Client(), NoticeboardMongoDatabase: db}

	core, logs := observer.New(zap.InfoLevel)
	h, err := BuildHandler(&config.CoreConfig{}, validAppConfig(), deps, zap.New(core))
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/announcements/active", http.StatusOK},
		{"GET", "/announcements", http.StatusUnauthorized},
		{"GET", "/audit", http.StatusUnauthorized},
		{"GET", "/nope", http.StatusNotFound},
		{"PATCH", "/announcements/ann-1", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s: status %d, want %d (body %s)", tt.method, tt.path, rec.Code, tt.status, rec.Body.String())
		}
	}

	if n := logs.FilterMessage("request").Len(); n != len(tests) {
		t.Errorf("expected %d request log lines, got %d", len(tests), n)
	}
}

func TestBuildHandler_AuditUsesAnnouncementCredentialRules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateTeacher(ctx, "ms.frizzle")
	deps := DBDeps{NoticeboardMongoClient: db.Client(), NoticeboardMongoDatabase: db}

	cfg := validAppConfig()
	cfg.AuthFailLimit = 2
	core, logs := observer.New(zap.InfoLevel)
	h, err := BuildHandler(&config.CoreConfig{}, cfg, deps, zap.New(core))
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	get := func(target, remote string) *testutil.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil)
		req.RemoteAddr = remote
		rec := testutil.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := get("/audit", "10.0.0.1:1000")
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertDetail(t, "Authentication required")

	rec = get("/audit?teacher_username=mr.nobody", "10.0.0.1:1000")
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertDetail(t, "Invalid credentials")

	if n := logs.FilterField(zap.String("event_type", audit.EventAuthUnknownTeacher)).Len(); n != 1 {
		t.Errorf("expected 1 unknown-teacher audit event, got %d", n)
	}

	// Failures on /audit count toward the same per-IP limit.
	rec = get("/announcements?teacher_username=ms.frizzle", "10.0.0.1:1000")
	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec = get("/audit?teacher_username=ms.frizzle", "10.0.0.1:1000")
	rec.AssertStatus(t, http.StatusTooManyRequests)

	get("/audit?teacher_username=ms.frizzle", "10.0.0.2:1000").AssertStatus(t, http.StatusOK)
}
