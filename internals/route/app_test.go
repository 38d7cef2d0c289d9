package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bhashaflow_backend/internals/configs"
	"bhashaflow_backend/internals/databases/testdb"
	workerModel "bhashaflow_backend/internals/features/users/workers/model"
	workerRepo "bhashaflow_backend/internals/features/users/workers/repository"
	helpersAuth "bhashaflow_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

type envelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code"`
	Data      map[string]any `json:"data"`
}

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
}

func testConfig() *configs.Config {
	return &configs.Config{
		App:     configs.AppConfig{Env: "test", RequestTimeout: 5 * time.Second, RateLimit: 1000},
		JWT:     configs.JWTConfig{Secret: testSecret, AccessTTL: time.Hour},
		Metrics: configs.MetricsConfig{Enabled: true},
	}
}

func addWorker(t *testing.T, db *gorm.DB, name, role, password string) *workerModel.UserModel {
	t.Helper()
	hash, err := helpersAuth.HashPassword(password)
	require.NoError(t, err)
	u := &workerModel.UserModel{UserName: name, Password: hash, Role: role, IsActive: true}
	require.NoError(t, workerRepo.NewWorkerRepository(db).Create(context.Background(), u))
	return u
}

func tokenFor(t *testing.T, u *workerModel.UserModel) string {
	t.Helper()
	tok, _, err := helpersAuth.IssueAccessToken(testSecret, u.ID, u.UserName, u.Role, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return out
}

func TestWorkflowOverHTTP(t *testing.T) {
	db := testdb.New(t)
	app := NewApp(db, testConfig())

	admin := addWorker(t, db, "admin", "admin", "admin12345")
	ravi := addWorker(t, db, "ravi", "translator", "ravi12345")
	adminTok := tokenFor(t, admin)

	// login ravi lewat endpoint
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"user_name": "ravi", "password": "ravi12345",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	login := decode[envelope](t, raw)
	raviTok, _ := login.Data["access_token"].(string)
	require.NotEmpty(t, raviTok)

	// ingest unit 42
	status, raw = call(t, app, http.MethodPost, "/api/a/daily/units", adminTok, map[string]any{
		"content_unit_id": 42,
		"date":            "2025-01-06",
		"sign":            "aries",
		"content":         map[string]string{"en": "Hello"},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	// assign ke ravi untuk hi
	status, raw = call(t, app, http.MethodPost, "/api/a/daily/assignments", adminTok, map[string]any{
		"worker_id": ravi.ID.String(), "count": 5, "language": "hi",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assigned := decode[envelope](t, raw)
	assert.Equal(t, float64(1), assigned.Data["assigned_count"])
	assert.Equal(t, "ravi", assigned.Data["worker_username"])

	// pool kosong
	status, raw = call(t, app, http.MethodPost, "/api/a/daily/assignments", adminTok, map[string]any{
		"worker_id": ravi.ID.String(), "count": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "NO_WORK_AVAILABLE", decode[envelope](t, raw).ErrorCode)

	// antrean ravi
	status, raw = call(t, app, http.MethodGet, "/api/u/daily/units/mine?language=hi", raviTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	mine := decode[listEnvelope](t, raw)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, float64(42), mine.Data[0]["content_unit_id"])

	// submit
	status, raw = call(t, app, http.MethodPost, "/api/u/daily/submissions", raviTok, map[string]any{
		"unit_id": 42, "language": "hi", "content": "नमस्ते",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	sub := decode[envelope](t, raw)
	assert.Equal(t, "inreview", sub.Data["status"])
	assert.Equal(t, "working", sub.Data["overall_status"])

	// translator tidak boleh review
	status, _ = call(t, app, http.MethodGet, "/api/r/daily/reviews?language=hi", raviTok, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = call(t, app, http.MethodGet, "/api/r/daily/reviews?language=hi", adminTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Len(t, decode[listEnvelope](t, raw).Data, 1)

	status, raw = call(t, app, http.MethodPost, "/api/r/daily/reviews/decide", adminTok, map[string]any{
		"unit_id": 42, "language": "hi", "decision": "reassign",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "working", decode[envelope](t, raw).Data["new_status"])

	status, raw = call(t, app, http.MethodPost, "/api/r/daily/reviews/decide", adminTok, map[string]any{
		"unit_id": 42, "language": "hi", "decision": "reject",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DECISION", decode[envelope](t, raw).ErrorCode)

	// koreksi langsung approved
	status, raw = call(t, app, http.MethodPost, "/api/r/corrections", adminTok, map[string]any{
		"unit_id": 42, "kind": "daily", "language": "en", "corrected_content": "Hello there",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	item, _ := decode[envelope](t, raw).Data["item"].(map[string]any)
	require.NotNil(t, item)
	statuses, _ := item["status"].(map[string]any)
	assert.Equal(t, "approved", statuses["en"])

	status, raw = call(t, app, http.MethodGet, "/api/r/stats?kind=daily&language=hi", adminTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	stats := decode[envelope](t, raw)
	assert.Equal(t, float64(1), stats.Data["total"])

	// jurnal
	status, raw = call(t, app, http.MethodGet, "/api/u/daily/units/42/history", raviTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	events := decode[listEnvelope](t, raw)
	require.NotEmpty(t, events.Data)
	assert.Equal(t, "correct", events.Data[0]["action"])

	status, _ = call(t, app, http.MethodGet, "/api/u/daily/units/4242", raviTok, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthGuards(t *testing.T) {
	db := testdb.New(t)
	app := NewApp(db, testConfig())
	ravi := addWorker(t, db, "ravi", "translator", "ravi12345")

	status, _ := call(t, app, http.MethodGet, "/api/u/daily/units/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/u/daily/units/mine", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// translator bukan manager
	status, _ = call(t, app, http.MethodPost, "/api/a/daily/units", tokenFor(t, ravi), map[string]any{})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"user_name": "ravi", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode[envelope](t, raw).ErrorCode)

	status, raw = call(t, app, http.MethodGet, "/api/auth/me", tokenFor(t, ravi), nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "ravi", decode[envelope](t, raw).Data["user_name"])

	status, _ = call(t, app, http.MethodGet, "/api/u/weekly/units/mine", tokenFor(t, ravi), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthAndMetrics(t *testing.T) {
	db := testdb.New(t)
	app := NewApp(db, testConfig())

	status, raw := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var health map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &health))
	assert.Equal(t, "OK", health["status"])

	status, raw = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "bhashaflow_http_requests_total")
}

func TestPatchUnitAdminOnly(t *testing.T) {
	db := testdb.New(t)
	app := NewApp(db, testConfig())
	adminTok := tokenFor(t, addWorker(t, db, "admin", "admin", "admin12345"))
	sanaTok := tokenFor(t, addWorker(t, db, "sana", "assigner", "sana12345"))

	status, raw := call(t, app, http.MethodPost, "/api/a/daily/units", adminTok, map[string]any{
		"content_unit_id": 101,
		"date":            "2025-01-06",
		"content":         map[string]string{"en": "Hello"},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	patch := map[string]any{"sign": "taurus", "status.hi": "inreview"}

	// assigner boleh masuk /api/a, tapi patch khusus admin
	status, raw = call(t, app, http.MethodPatch, "/api/a/daily/units/101", sanaTok, patch)
	assert.Equal(t, http.StatusForbidden, status, string(raw))

	status, raw = call(t, app, http.MethodPatch, "/api/a/daily/units/101", adminTok, patch)
	require.Equal(t, http.StatusOK, status, string(raw))
	unit := decode[envelope](t, raw)
	assert.Equal(t, "taurus", unit.Data["sign"])
	statuses, _ := unit.Data["status"].(map[string]any)
	assert.Equal(t, "inreview", statuses["hi"])

	status, raw = call(t, app, http.MethodPatch, "/api/a/daily/units/101", adminTok, map[string]any{"name.hi": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FIELD", decode[envelope](t, raw).ErrorCode)
}
