package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/degreeportal-go/auth"
	"github.com/user/degreeportal-go/config"
)

const testSecret = "router-test-secret"

type testAPI struct {
	t       *testing.T
	handler http.Handler
	stores  Stores
}

func newTestAPI(t *testing.T, opts ...auth.TokenOption) *testAPI {
	t.Helper()
	stores := NewMemoryStores()
	svc := NewServices(&config.AuthConfig{
		JWTSecret:              testSecret,
		BcryptCost:             bcrypt.MinCost,
		BootstrapAdminPassword: "123",
	}, stores, opts...)
	require.NoError(t, svc.Users.EnsureBootstrapIdentity(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewRouter(svc, &config.ServerConfig{CORSAllowedOrigins: []string{"*"}}, logger)
	return &testAPI{t: t, handler: handler, stores: stores}
}

func (a *testAPI) do(method, path, authorization string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func basicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

// login returns the Authorization header value for user.
func (a *testAPI) login(user, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/api/authenticate", basicAuth(user, password), nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return rec.Header().Get("Authorization")
}

func (a *testAPI) createUser(admin, userID, password string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/users", admin, map[string]interface{}{"userID": userID, "password": password})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["Error"]
}

func decodePayload(t *testing.T, header string) map[string]interface{} {
	t.Helper()
	token := strings.TrimPrefix(header, "Bearer ")
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestBootstrapAdminCanLogIn(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(http.MethodGet, "/api/authenticate", basicAuth("admin", "123"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Success":"Token created successfully"}`, rec.Body.String())
	payload := decodePayload(t, rec.Header().Get("Authorization"))
	assert.Equal(t, "admin", payload["userID"])
	assert.Equal(t, true, payload["isAdministrator"])
}

func TestLoginTokenCarriesClaim(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(api.login("admin", "123"), "alice", "pw1")

	payload := decodePayload(t, api.login("alice", "pw1"))
	assert.Equal(t, "alice", payload["userID"])
	assert.Equal(t, false, payload["isAdministrator"])
	iat := payload["iat"].(float64)
	exp := payload["exp"].(float64)
	assert.Equal(t, float64(3600), exp-iat)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(api.login("admin", "123"), "alice", "pw1")

	wrongPassword := api.do(http.MethodGet, "/api/authenticate", basicAuth("alice", "nope"), nil)
	unknownUser := api.do(http.MethodGet, "/api/authenticate", basicAuth("ghost", "pw1"), nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Empty(t, wrongPassword.Header().Get("Authorization"))

	missing := api.do(http.MethodGet, "/api/authenticate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, `Basic realm="Secure Area"`, missing.Header().Get("WWW-Authenticate"))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	api := newTestAPI(t, auth.WithClock(func() time.Time { return clock() }))
	token := api.login("admin", "123")

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/users", token, nil).Code)

	later := now.Add(3601 * time.Second)
	clock = func() time.Time { return later }
	rec := api.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Expired or invalid token", errorOf(t, rec))
}

func TestUsersRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(api.login("admin", "123"), "alice", "pw1")
	alice := api.login("alice", "pw1")

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/users", alice, nil).Code)

	rec := api.do(http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing or invalid Authorization header", errorOf(t, rec))

	rec = api.do(http.MethodGet, "/api/users", "Token abc", nil)
	assert.Equal(t, "Invalid AuthHeader format", errorOf(t, rec))

	self := api.do(http.MethodGet, "/api/users/alice", alice, nil)
	assert.Equal(t, http.StatusOK, self.Code)
	assert.NotContains(t, self.Body.String(), "password")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/users/admin", alice, nil).Code)
}

func TestNonAdminCannotPromoteThemselves(t *testing.T) {
	api := newTestAPI(t)
	api.createUser(api.login("admin", "123"), "alice", "pw1")
	alice := api.login("alice", "pw1")

	rec := api.do(http.MethodPut, "/api/users/alice", alice, map[string]interface{}{"isAdministrator": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored, err := api.stores.Users.FindByUserID(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, stored.IsAdministrator)
}

func TestPublicRegistration(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/publicUsers", "", map[string]interface{}{"userID": "eve", "password": "pw", "isAdministrator": true})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPost, "/api/publicUsers", "", map[string]interface{}{"userID": "dave", "password": "pw"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	api.login("dave", "pw")

	rec = api.do(http.MethodPost, "/api/publicUsers", "", map[string]interface{}{"userID": "dave", "password": "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDegreeCoursesAndApplications(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login("admin", "123")
	api.createUser(admin, "alice", "pw1")
	alice := api.login("alice", "pw1")

	course := map[string]interface{}{
		"name": "Informatics", "shortName": "INF",
		"universityName": "Berliner Hochschule für Technik", "universityShortName": "BHT",
		"departmentName": "Informatik und Medien", "departmentShortName": "FB VI",
	}
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/degreeCourses", "", course).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/degreeCourses", alice, course).Code)

	rec := api.do(http.MethodPost, "/api/degreeCourses", admin, course)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	courseID := created["id"].(string)

	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/degreeCourses", admin, course).Code)

	rec = api.do(http.MethodGet, "/api/degreeCourses?universityShortName=BHT", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), courseID)

	rec = api.do(http.MethodGet, "/api/degreeCourses/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", errorOf(t, rec))

	application := map[string]interface{}{"degreeCourseID": courseID, "targetPeriodYear": 2026, "targetPeriodShortName": "WiSe"}
	rec = api.do(http.MethodPost, "/api/degreeCourseApplications", alice, application)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var app map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, "alice", app["applicantUserID"])

	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/degreeCourseApplications", alice, application).Code)

	rec = api.do(http.MethodGet, "/api/degreeCourseApplications/myApplications", alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), app["id"].(string))

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/degreeCourseApplications", alice, nil).Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/degreeCourses/"+courseID+"/degreeCourseApplications", alice, nil).Code)

	rec = api.do(http.MethodGet, "/api/degreeCourses/"+courseID+"/degreeCourseApplications", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), app["id"].(string))

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/degreeCourseApplications/"+app["id"].(string), alice, nil).Code)
}

func TestUnknownEndpoint(t *testing.T) {
	api := newTestAPI(t)
	for _, path := range []string{"/nope", "/api/nope", "/api/users/alice/extra"} {
		rec := api.do(http.MethodGet, path, api.login("admin", "123"), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Endpoint not existing", errorOf(t, rec), path)
	}
}

func TestPanicBecomesJSON500(t *testing.T) {
	handler := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorOf(t, rec))
}

func TestHTTPServer_WriteTimeoutOutlastsRequestTimeout(t *testing.T) {
	srv := newHTTPServer(&config.ServerConfig{Port: "8080"}, http.NotFoundHandler())
	assert.Equal(t, ":8080", srv.Addr)
	assert.Greater(t, srv.WriteTimeout, requestTimeout)
}
