package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/profilehub/pkg/connector"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/user/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err != nil || c.Value != "valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		write(w, map[string]any{"_id": "me", "firstName": "Ada", "lastName": "Lovelace"})
	})
	router.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.HandleFunc("/api/v1/post/listAllPost/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, []map[string]any{{"_id": "1"}, {"_id": "2"}, {"_id": "3"}, {"_id": "4"}})
	})
	for _, path := range []string{"/api/v1/profile/education/{id}", "/api/v1/profile/experience/{id}", "/api/v1/profile/skill/getAllSkill/{id}"} {
		router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) { write(w, []any{}) })
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newTestHandler(t *testing.T, cookies string) (http.Handler, *connector.ProfileConnector) {
	t.Helper()
	api := newFakeAPI(t)
	cfg, err := connector.LoadConfig("")
	require.NoError(t, err)
	cfg.BaseURL = api.URL
	cfg.Cookies = cookies
	pc, err := connector.NewProfileConnector(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, pc.Start(context.Background()))
	return newRouter(pc), pc
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestServeSummary(t *testing.T) {
	h, _ := newTestHandler(t, "token=valid")

	rec, body := get(t, h, "/profile/me")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "summary", body["view"])
	assert.Len(t, body["posts"], 3)
	assert.EqualValues(t, 4, body["post_count"])
	header := body["header"].(map[string]any)
	assert.Equal(t, "Ada Lovelace", header["display_name"])
}

func TestServeAllPosts(t *testing.T) {
	h, _ := newTestHandler(t, "token=valid")

	rec, body := get(t, h, "/profile/me/all-posts")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "all-posts", body["view"])
	assert.Len(t, body["posts"], 4)
}

func TestServeNotFound(t *testing.T) {
	h, _ := newTestHandler(t, "token=valid")

	rec, body := get(t, h, "/profile/me/settings")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not-found", body["view"])
}

func TestServeDeepPathNotFound(t *testing.T) {
	h, _ := newTestHandler(t, "token=valid")

	for _, path := range []string{"/profile/me/a/b", "/profile/me/all-posts/extra"} {
		rec, body := get(t, h, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "not-found", body["view"], path)
	}
}

func TestServeWithoutSession(t *testing.T) {
	h, _ := newTestHandler(t, "")

	rec, body := get(t, h, "/profile/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, true, body["loading"])

	_, body = get(t, h, "/whoami")
	assert.Equal(t, false, body["logged_in"])
}

func TestServeLoginLogout(t *testing.T) {
	h, pc := newTestHandler(t, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"all_headers":{"Cookie":"token=valid"}}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me", pc.Session.UserID())

	_, body := get(t, h, "/whoami")
	assert.Equal(t, true, body["logged_in"])
	assert.Equal(t, "Ada Lovelace", body["displayname"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"all_headers":{"Cookie":"foo=bar"}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, pc.Session.UserID())
}

func TestProfileLocation(t *testing.T) {
	assert.Equal(t, "/profile/alice", profileLocation("alice"))
	assert.Equal(t, "/profile/alice/all-skills?edit", profileLocation("/alice/all-skills?edit"))
	assert.Equal(t, "/profile/bob", profileLocation("/profile/bob"))
}
