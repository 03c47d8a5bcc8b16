package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"insureops/middleware"
	"insureops/models"
	"insureops/store"
)

// staticResolver resolves a fixed user id, standing in for a real identity
// provider in handler tests.
type staticResolver struct {
	st     *store.Store
	userID string
}

func (r *staticResolver) ResolveActingUser(_ *fiber.Ctx) (*models.User, error) {
	return r.st.GetUser(r.userID)
}

type testEnv struct {
	app   *fiber.App
	store *store.Store
	user  *models.User
	team  *models.Team
}

func newTestApp(t *testing.T, resolver middleware.IdentityResolver) (*fiber.App, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Team{}, &models.TeamMember{},
		&models.Document{}, &models.Task{}, &models.Meeting{},
		&models.EmailArchive{}, &models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	st := store.New(db)
	if resolver == nil {
		resolver = middleware.NewStubIdentityResolver(st)
	}

	app := fiber.New(fiber.Config{BodyLimit: 50 * 1024 * 1024})
	SetupRoutes(app, db, resolver, t.TempDir())
	return app, st
}

// newMemberEnv builds an app with one user who is a member of one team and
// has it selected.
func newMemberEnv(t *testing.T) *testEnv {
	t.Helper()

	resolver := &staticResolver{userID: "u1"}
	app, st := newTestApp(t, resolver)
	resolver.st = st

	team := &models.Team{Name: "Claims"}
	if err := st.CreateTeam(team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	user := &models.User{ID: "u1", Email: "u1@example.com", Role: "member", CurrentTeamID: &team.ID}
	if err := st.UpsertUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := st.AddUserToTeam(user.ID, team.ID, "member"); err != nil {
		t.Fatalf("failed to add membership: %v", err)
	}

	return &testEnv{app: app, store: st, user: user, team: team}
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	return body.Message
}

func TestNoTeamSelected(t *testing.T) {
	resolver := &staticResolver{userID: "floating"}
	app, st := newTestApp(t, resolver)
	resolver.st = st

	if err := st.UpsertUser(&models.User{ID: "floating", Email: "f@example.com"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	for _, target := range []string{"/api/tasks", "/api/documents", "/api/dashboard/metrics"} {
		resp := doJSON(t, app, http.MethodGet, target, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, resp.StatusCode)
			continue
		}
		if msg := errorMessage(t, resp); msg != "No team selected" {
			t.Errorf("%s: unexpected message %q", target, msg)
		}
	}
}

func TestGuardRejectsNonMember(t *testing.T) {
	resolver := &staticResolver{userID: "intruder"}
	app, st := newTestApp(t, resolver)
	resolver.st = st

	team := &models.Team{Name: "Claims"}
	if err := st.CreateTeam(team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	// Current team points at a team without a membership row.
	user := &models.User{ID: "intruder", Email: "i@example.com", CurrentTeamID: &team.ID}
	if err := st.UpsertUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/tasks", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-member, got %d", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Not a member of the selected team" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestStubIdentityProvisioning(t *testing.T) {
	app, st := newTestApp(t, nil)

	resp := doJSON(t, app, http.MethodGet, "/api/auth/user", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var user models.User
	decodeBody(t, resp, &user)
	if user.ID != middleware.SystemUserID {
		t.Errorf("expected system user, got %q", user.ID)
	}
	if user.CurrentTeamID == nil {
		t.Fatal("expected the stub to provision a current team")
	}

	member, err := st.IsTeamMember(user.ID, *user.CurrentTeamID)
	if err != nil {
		t.Fatalf("IsTeamMember failed: %v", err)
	}
	if !member {
		t.Error("expected the stub to create a membership for its default team")
	}
}

func TestSetupEndpointIdempotent(t *testing.T) {
	resolver := &staticResolver{userID: "fresh"}
	app, st := newTestApp(t, resolver)
	resolver.st = st

	if err := st.UpsertUser(&models.User{ID: "fresh", Email: "fresh@example.com"}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/setup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var first struct {
		Teams []models.Team `json:"teams"`
	}
	decodeBody(t, resp, &first)
	if len(first.Teams) != 4 {
		t.Fatalf("expected 4 default teams, got %d", len(first.Teams))
	}

	resp = doJSON(t, app, http.MethodPost, "/api/setup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on second setup, got %d", resp.StatusCode)
	}
	var second struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &second)
	if second.Message != "User already has teams" {
		t.Errorf("unexpected second setup response: %q", second.Message)
	}

	teams, err := st.GetUserTeams("fresh")
	if err != nil {
		t.Fatalf("GetUserTeams failed: %v", err)
	}
	if len(teams) != 4 {
		t.Errorf("expected exactly 4 memberships, got %d", len(teams))
	}
}

func TestSelectTeamSwitchesScope(t *testing.T) {
	env := newMemberEnv(t)

	other := &models.Team{Name: "Commercial"}
	if err := env.store.CreateTeam(other); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
	if err := env.store.AddUserToTeam(env.user.ID, other.ID, "member"); err != nil {
		t.Fatalf("failed to add membership: %v", err)
	}

	resp := doJSON(t, env.app, http.MethodPost, fmt.Sprintf("/api/teams/%d/select", other.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	refreshed, err := env.store.GetUser(env.user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if refreshed.CurrentTeamID == nil || *refreshed.CurrentTeamID != other.ID {
		t.Errorf("expected current team %d, got %v", other.ID, refreshed.CurrentTeamID)
	}
}

func multipartUpload(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("files", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("a"), size)); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	if err := w.WriteField("category", "Claims"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	env := newMemberEnv(t)

	body, contentType := multipartUpload(t, "big.pdf", 12*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversize file, got %d", resp.StatusCode)
	}

	var docs, activity int64
	env.store.DB.Model(&models.Document{}).Count(&docs)
	env.store.DB.Model(&models.ActivityLog{}).Count(&activity)
	if docs != 0 || activity != 0 {
		t.Errorf("rejected upload left traces: %d documents, %d activity rows", docs, activity)
	}
}

func TestUploadRejectsBadExtension(t *testing.T) {
	env := newMemberEnv(t)

	body, contentType := multipartUpload(t, "malware.exe", 128)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for .exe upload, got %d", resp.StatusCode)
	}
}

func TestUploadCreatesDocumentAndActivity(t *testing.T) {
	env := newMemberEnv(t)

	body, contentType := multipartUpload(t, "claim-form.pdf", 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var docs []models.Document
	decodeBody(t, resp, &docs)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document in response, got %d", len(docs))
	}
	doc := docs[0]
	if doc.OriginalName != "claim-form.pdf" {
		t.Errorf("unexpected original name %q", doc.OriginalName)
	}
	if doc.TeamID != env.team.ID {
		t.Errorf("document scoped to wrong team %d", doc.TeamID)
	}
	if doc.Status != models.DocumentStatusPending {
		t.Errorf("expected pending status, got %q", doc.Status)
	}
	if !strings.HasSuffix(doc.Name, ".pdf") {
		t.Errorf("stored name should keep the extension, got %q", doc.Name)
	}

	activity, err := env.store.GetRecentActivity(env.team.ID, 0)
	if err != nil {
		t.Fatalf("GetRecentActivity failed: %v", err)
	}
	if len(activity) != 1 || activity[0].Action != models.ActivityActionUpload {
		t.Fatalf("expected one upload activity entry, got %+v", activity)
	}
}

func TestTaskLifecycle(t *testing.T) {
	env := newMemberEnv(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":    "Review claim #42",
		"priority": "high",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 creating task, got %d", resp.StatusCode)
	}
	var task models.Task
	decodeBody(t, resp, &task)
	if task.Status != models.TaskStatusPending {
		t.Errorf("expected default pending status, got %q", task.Status)
	}
	if task.TeamID != env.team.ID {
		t.Errorf("task scoped to wrong team %d", task.TeamID)
	}

	resp = doJSON(t, env.app, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"status": "completed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 updating task, got %d", resp.StatusCode)
	}
	var updated models.Task
	decodeBody(t, resp, &updated)
	if updated.Status != models.TaskStatusCompleted {
		t.Errorf("expected completed status, got %q", updated.Status)
	}

	resp = doJSON(t, env.app, http.MethodGet, "/api/tasks", nil)
	var listed []models.Task
	decodeBody(t, resp, &listed)
	if len(listed) != 1 || listed[0].Status != models.TaskStatusCompleted {
		t.Errorf("list did not reflect the update: %+v", listed)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	env := newMemberEnv(t)

	resp := doJSON(t, env.app, http.MethodPatch, "/api/tasks/9999", map[string]interface{}{
		"status": "completed",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing task, got %d", resp.StatusCode)
	}
}

func TestTaskRejectsBadPriority(t *testing.T) {
	env := newMemberEnv(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":    "bad",
		"priority": "urgent",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid priority, got %d", resp.StatusCode)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	env := newMemberEnv(t)

	for _, target := range []string{"/api/documents/search", "/api/email-archives/search"} {
		resp := doJSON(t, env.app, http.MethodGet, target, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400 without q, got %d", target, resp.StatusCode)
			continue
		}
		if msg := errorMessage(t, resp); msg != "Search query is required" {
			t.Errorf("%s: unexpected message %q", target, msg)
		}
	}
}

func TestEmailArchiveValidation(t *testing.T) {
	env := newMemberEnv(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/email-archives", map[string]interface{}{
		"subject":    "Renewal",
		"sender":     "not-an-email",
		"recipient":  "ops@insureops.test",
		"email_date": time.Now().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid sender, got %d", resp.StatusCode)
	}

	resp = doJSON(t, env.app, http.MethodPost, "/api/email-archives", map[string]interface{}{
		"subject":    "Renewal",
		"sender":     "agent@broker.test",
		"recipient":  "ops@insureops.test",
		"body":       "terms attached",
		"tags":       []string{"renewal", "priority"},
		"email_date": time.Now().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 archiving email, got %d", resp.StatusCode)
	}
	var archive models.EmailArchive
	decodeBody(t, resp, &archive)
	if len(archive.Tags) != 2 || archive.Tags[0] != "renewal" {
		t.Errorf("tags not preserved in order: %v", archive.Tags)
	}

	activity, err := env.store.GetRecentActivity(env.team.ID, 0)
	if err != nil {
		t.Fatalf("GetRecentActivity failed: %v", err)
	}
	if len(activity) != 1 || activity[0].Action != models.ActivityActionArchive {
		t.Errorf("expected one archive activity entry, got %+v", activity)
	}
}

func TestMeetingCreationAndActivity(t *testing.T) {
	env := newMemberEnv(t)

	start := time.Now().Add(time.Hour)
	resp := doJSON(t, env.app, http.MethodPost, "/api/meetings", map[string]interface{}{
		"title":      "Claims triage",
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(time.Hour).Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var meeting models.Meeting
	decodeBody(t, resp, &meeting)
	if meeting.Status != models.MeetingStatusScheduled {
		t.Errorf("expected scheduled status, got %q", meeting.Status)
	}

	activity, err := env.store.GetRecentActivity(env.team.ID, 0)
	if err != nil {
		t.Fatalf("GetRecentActivity failed: %v", err)
	}
	if len(activity) != 1 || activity[0].EntityType != models.EntityTypeMeeting {
		t.Errorf("expected one meeting activity entry, got %+v", activity)
	}
}

func TestDashboardMetricsEndpoint(t *testing.T) {
	env := newMemberEnv(t)

	resp := doJSON(t, env.app, http.MethodGet, "/api/dashboard/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var metrics store.DashboardMetrics
	decodeBody(t, resp, &metrics)
	if metrics.ActiveTasks != 0 || metrics.PendingReviews != 0 {
		t.Errorf("expected zero metrics for fresh team, got %+v", metrics)
	}
}

func TestDocumentStatusUpdate(t *testing.T) {
	env := newMemberEnv(t)

	doc := &models.Document{Name: "files-s.pdf", OriginalName: "s.pdf", FilePath: "p", FileSize: 1,
		MimeType: "application/pdf", Category: "General", Status: models.DocumentStatusPending,
		UploadedBy: env.user.ID, TeamID: env.team.ID}
	if err := env.store.CreateDocument(doc); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	resp := doJSON(t, env.app, http.MethodPatch, fmt.Sprintf("/api/documents/%d/status", doc.ID),
		map[string]interface{}{"status": "approved"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated models.Document
	decodeBody(t, resp, &updated)
	if updated.Status != models.DocumentStatusApproved {
		t.Errorf("expected approved status, got %q", updated.Status)
	}

	resp = doJSON(t, env.app, http.MethodPatch, fmt.Sprintf("/api/documents/%d/status", doc.ID),
		map[string]interface{}{"status": "archived"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", resp.StatusCode)
	}
}
