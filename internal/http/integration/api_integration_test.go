package integration__test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/vallas-api/internal/config"
	"github.com/geocoder89/vallas-api/internal/docstore"
	apphttp "github.com/geocoder89/vallas-api/internal/http"
	"github.com/geocoder89/vallas-api/internal/security"
	"github.com/gin-gonic/gin"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		ServiceName:        "vallas-api-test",
		JWTSecret:          "test-secret-key",
		JWTExpiresIn:       time.Hour,
		StoreDriver:        "memory",
		UploadMode:         "memory",
		UploadMaxBytes:     1 << 20,
		CORSAllowedOrigins: []string{"*"},
		LoginRateLimit:     100,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *docstore.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := docstore.NewMemory()

	return apphttp.NewRouter(logger, store, testConfig(), nil), store
}

// seedLegacyUser inserts a user whose password predates hashing.
func seedLegacyUser(t *testing.T, store docstore.Store, email, password, rol string) string {
	t.Helper()

	doc, err := store.Insert(context.Background(), "usuarios", map[string]any{
		"username":  strings.Split(email, "@")[0],
		"email":     email,
		"password":  password,
		"rol":       rol,
		"createdAt": "2024-01-02T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return doc.ID
}

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func wantStatus(t *testing.T, step string, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("%s got status %d, want %d, body=%s", step, w.Code, want, w.Body.String())
	}
}

type loginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    map[string]any `json:"user"`
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	wantStatus(t, "login", w, http.StatusOK)

	var resp loginResponse
	mustReadJSON(t, w, &resp)
	if strings.TrimSpace(resp.Token) == "" {
		t.Fatalf("login expected token, got empty")
	}
	return resp.Token
}

func TestIntegration_LegacyLoginMigratesPassword(t *testing.T) {
	router, store := setupRouter(t)
	id := seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")

	w := doRequest(router, http.MethodPost, "/api/auth/login", `{"email":"ana@vallas.com","password":"secreto"}`, "")
	wantStatus(t, "legacy login", w, http.StatusOK)

	var resp loginResponse
	mustReadJSON(t, w, &resp)
	if resp.Message != "Login exitoso" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if _, leaked := resp.User["password"]; leaked {
		t.Fatalf("password must not be returned: %v", resp.User)
	}
	if resp.User["createdAt"] != "2024-01-02" {
		t.Fatalf("createdAt should be a plain date, got %v", resp.User["createdAt"])
	}

	doc, err := store.Get(context.Background(), "usuarios", id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	stored, _ := doc.Data["password"].(string)
	if !security.IsHashed(stored) {
		t.Fatalf("expected stored password to be migrated to bcrypt, got %q", stored)
	}

	// later logins go through bcrypt
	login(t, router, "ana@vallas.com", "secreto")

	w = doRequest(router, http.MethodPost, "/api/auth/login", `{"email":"ana@vallas.com","password":"otra"}`, "")
	wantStatus(t, "wrong password", w, http.StatusUnauthorized)
	if strings.Contains(w.Body.String(), "token") {
		t.Fatalf("failed login must not carry a token: %s", w.Body.String())
	}
}

func TestIntegration_VallasCRUD(t *testing.T) {
	router, store := setupRouter(t)
	seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")
	token := login(t, router, "ana@vallas.com", "secreto")

	w := doRequest(router, http.MethodPost, "/api/vallas", `{"codigo":"V-100","cantidad":12,"estado":"disponible"}`, "")
	wantStatus(t, "create without token", w, http.StatusUnauthorized)

	w = doRequest(router, http.MethodPost, "/api/vallas", `{"codigo":"V-100","cantidad":12,"estado":"disponible"}`, token)
	wantStatus(t, "create", w, http.StatusCreated)

	var created map[string]any
	mustReadJSON(t, w, &created)
	id, _ := created["id"].(string)
	if id == "" || created["createdAt"] == nil {
		t.Fatalf("expected id and createdAt, got %v", created)
	}

	w = doRequest(router, http.MethodGet, "/api/vallas/"+id, "", "")
	wantStatus(t, "get", w, http.StatusOK)

	var got map[string]any
	mustReadJSON(t, w, &got)
	if got["codigo"] != "V-100" || got["cantidad"] != float64(12) || got["estado"] != "disponible" {
		t.Fatalf("get returned %v", got)
	}

	w = doRequest(router, http.MethodPut, "/api/vallas/"+id, `{"estado":"instalada"}`, token)
	wantStatus(t, "partial update", w, http.StatusOK)
	mustReadJSON(t, w, &got)
	if got["estado"] != "instalada" || got["codigo"] != "V-100" || got["cantidad"] != float64(12) {
		t.Fatalf("partial update touched other fields: %v", got)
	}

	w = doRequest(router, http.MethodPut, "/api/vallas/nope", `{"estado":"instalada"}`, token)
	wantStatus(t, "update missing", w, http.StatusNotFound)

	w = doRequest(router, http.MethodDelete, "/api/vallas/"+id, "", token)
	wantStatus(t, "delete", w, http.StatusOK)

	w = doRequest(router, http.MethodDelete, "/api/vallas/"+id, "", token)
	wantStatus(t, "second delete", w, http.StatusNotFound)
}

func TestIntegration_RoleChecks(t *testing.T) {
	router, store := setupRouter(t)
	seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")
	adminToken := login(t, router, "ana@vallas.com", "secreto")

	w := doRequest(router, http.MethodPost, "/api/usuarios",
		`{"username":"beto","email":"Beto@Vallas.com","password":"123456"}`, adminToken)
	wantStatus(t, "create user", w, http.StatusCreated)

	var user map[string]any
	mustReadJSON(t, w, &user)
	if user["rol"] != "user" || user["email"] != "beto@vallas.com" {
		t.Fatalf("unexpected user %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must not be returned")
	}

	userToken := login(t, router, "beto@vallas.com", "123456")

	w = doRequest(router, http.MethodPost, "/api/vallas", `{"codigo":"V-1","cantidad":1,"estado":"transito"}`, userToken)
	wantStatus(t, "user create valla", w, http.StatusCreated)

	var v map[string]any
	mustReadJSON(t, w, &v)

	w = doRequest(router, http.MethodDelete, "/api/vallas/"+v["id"].(string), "", userToken)
	wantStatus(t, "user delete valla", w, http.StatusForbidden)

	w = doRequest(router, http.MethodGet, "/api/usuarios", "", userToken)
	wantStatus(t, "user list usuarios", w, http.StatusForbidden)

	w = doRequest(router, http.MethodGet, "/api/empleados", "", "")
	wantStatus(t, "anonymous empleados", w, http.StatusUnauthorized)

	w = doRequest(router, http.MethodPut, "/api/usuarios/password/"+user["id"].(string), `{"newPassword":"nueva123"}`, adminToken)
	wantStatus(t, "reset password", w, http.StatusOK)
	login(t, router, "beto@vallas.com", "nueva123")
}

func TestIntegration_EmpleadosDuplicateDNI(t *testing.T) {
	router, store := setupRouter(t)
	seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")
	token := login(t, router, "ana@vallas.com", "secreto")

	w := doRequest(router, http.MethodPost, "/api/empleados",
		`{"nombre":"Juan","apellido":"Pérez","dni":"30111222","legajo":"L-1"}`, token)
	wantStatus(t, "first empleado", w, http.StatusCreated)

	w = doRequest(router, http.MethodPost, "/api/empleados",
		`{"nombre":"Juana","apellido":"Gómez","dni":"30111222","legajo":"L-2"}`, token)
	wantStatus(t, "duplicate dni", w, http.StatusBadRequest)

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	mustReadJSON(t, w, &env)
	if env.Error.Code != "duplicate_dni" {
		t.Fatalf("got code %q, want duplicate_dni", env.Error.Code)
	}
}

func TestIntegration_SearchAndETag(t *testing.T) {
	router, store := setupRouter(t)
	seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")
	token := login(t, router, "ana@vallas.com", "secreto")

	for _, codigo := range []string{"NORTE-1", "norte-2", "SUR-1"} {
		w := doRequest(router, http.MethodPost, "/api/vallas", `{"codigo":"`+codigo+`","cantidad":1,"estado":"disponible"}`, token)
		wantStatus(t, "seed valla", w, http.StatusCreated)
	}

	w := doRequest(router, http.MethodGet, "/api/vallas/search?codigo=Norte", "", "")
	wantStatus(t, "search", w, http.StatusOK)

	var list struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	mustReadJSON(t, w, &list)
	if list.Count != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", list.Count, list.Items)
	}
	for _, it := range list.Items {
		if !strings.Contains(strings.ToLower(it["codigo"].(string)), "norte") {
			t.Fatalf("unexpected match %v", it)
		}
	}

	w = doRequest(router, http.MethodGet, "/api/vallas/search", "", "")
	wantStatus(t, "search without filter", w, http.StatusBadRequest)

	w = doRequest(router, http.MethodGet, "/api/vallas", "", "")
	wantStatus(t, "list", w, http.StatusOK)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag on list")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/vallas", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	wantStatus(t, "conditional list", w, http.StatusNotModified)
}

func TestIntegration_UnknownRoute(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/desconocido", "", "")
	wantStatus(t, "unknown route", w, http.StatusNotFound)
	if !strings.Contains(w.Body.String(), "Ruta NO encontrada") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/", "", "")
	wantStatus(t, "root", w, http.StatusOK)
}

func TestIntegration_PanicStillGetsAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	router := apphttp.NewRouter(logger, docstore.NewMemory(), testConfig(), nil)
	router.GET("/api/boom", func(c *gin.Context) { panic("kaboom") })

	w := doRequest(router, http.MethodGet, "/api/boom", "", "")
	wantStatus(t, "panic", w, http.StatusInternalServerError)

	var access map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err == nil && rec["msg"] == "http_request" {
			access = rec
		}
	}
	if access == nil {
		t.Fatalf("expected an http_request line, got %s", buf.String())
	}
	if access["status"] != float64(http.StatusInternalServerError) || access["route"] != "/api/boom" {
		t.Fatalf("unexpected access line %v", access)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected the panic to be logged, got %s", buf.String())
	}
}

func TestIntegration_UploadRateLimitedPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.UploadRateLimit = 1
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := docstore.NewMemory()
	router := apphttp.NewRouter(logger, store, cfg, nil)

	seedLegacyUser(t, store, "ana@vallas.com", "secreto", "admin")
	seedLegacyUser(t, store, "beto@vallas.com", "123456", "user")
	ana := login(t, router, "ana@vallas.com", "secreto")
	beto := login(t, router, "beto@vallas.com", "123456")

	// no file part: the handler answers 400 once the limiter lets it through
	w := doRequest(router, http.MethodPost, "/api/upload", "", ana)
	wantStatus(t, "first upload", w, http.StatusBadRequest)

	w = doRequest(router, http.MethodPost, "/api/upload", "", ana)
	wantStatus(t, "second upload", w, http.StatusTooManyRequests)

	w = doRequest(router, http.MethodPost, "/api/upload", "", beto)
	wantStatus(t, "other user", w, http.StatusBadRequest)
}
