package profilego_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/util/ptr"

	"github.com/beeper/profilehub/pkg/profilego"
	"github.com/beeper/profilehub/pkg/profilego/cookies"
	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type fakeAPI struct {
	lock     sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (f *fakeAPI) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.lock.Lock()
	defer f.lock.Unlock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    data,
		"message": message,
	})
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/post/listAllPost/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{"_id": "p1", "content": "hello", "author": map[string]any{"_id": mux.Vars(r)["id"]}},
		}, "")
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/profile/education/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{"_id": "e1", "school": map[string]any{"name": "A"}, "endYear": 2018},
		}, "")
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/profile/experience/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeEnvelope(w, http.StatusOK, false, nil, "experience service down")
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/profile/skill/getAllSkill/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeEnvelope(w, http.StatusOK, true, nil, "")
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/profile/skill/deleteSkill/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		if mux.Vars(r)["id"] == "locked" {
			writeEnvelope(w, http.StatusConflict, false, nil, "skill is locked")
			return
		}
		writeEnvelope(w, http.StatusOK, true, nil, "deleted")
	}).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/user/updateProfile", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeEnvelope(w, http.StatusOK, true, map[string]any{"_id": "me", "firstName": "Ada", "bio": "updated"}, "")
	}).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/user/me", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		if c, err := r.Cookie("token"); err != nil || c.Value != "valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "csrf-1"})
		writeEnvelope(w, http.StatusOK, true, map[string]any{"_id": "me", "firstName": "Ada", "lastName": "Lovelace"}, "")
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, api
}

func newTestClient(srv *httptest.Server, cookieStr string, handler profilego.EventHandler) *profilego.Client {
	return profilego.NewClient(&profilego.ClientOpts{
		BaseURL:      srv.URL,
		Cookies:      cookies.NewCookiesFromString(cookieStr),
		EventHandler: handler,
	}, zerolog.Nop())
}

func TestListCollections(t *testing.T) {
	srv, api := newTestServer(t)
	cli := newTestClient(srv, "token=valid", nil)
	ctx := context.Background()

	posts, err := cli.ListPosts(ctx, "user 1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "user 1", posts[0].Author.ID)

	educations, err := cli.ListEducations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, educations, 1)
	assert.Equal(t, types.Year("2018"), educations[0].EndYear)

	skills, err := cli.ListSkills(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)

	require.NotEmpty(t, api.requests)
	first := api.requests[0]
	assert.Equal(t, "/api/v1/post/listAllPost/user%201", first.URL.EscapedPath())
	assert.Equal(t, "token=valid", first.Header.Get("Cookie"))
	assert.NotEmpty(t, first.Header.Get("X-Request-Id"))
}

func TestListFailureSurfacesMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	cli := newTestClient(srv, "token=valid", nil)

	experiences, err := cli.ListExperiences(context.Background(), "u1")
	require.Error(t, err)
	assert.Nil(t, experiences)

	var apiErr *profilego.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "experience service down", apiErr.Message)
}

func TestDeleteSkill(t *testing.T) {
	srv, api := newTestServer(t)
	cli := newTestClient(srv, "token=valid; XSRF-TOKEN=csrf-0", nil)

	require.NoError(t, cli.DeleteSkill(context.Background(), "u1", "s1"))
	assert.Equal(t, "csrf-0", api.requests[0].Header.Get("X-Xsrf-Token"))

	err := cli.DeleteSkill(context.Background(), "u1", "locked")
	var apiErr *profilego.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "skill is locked", apiErr.Message)
}

func TestUpdateIntro(t *testing.T) {
	srv, api := newTestServer(t)
	cli := newTestClient(srv, "token=valid", nil)

	user, err := cli.UpdateIntro(context.Background(), types.IntroEdit{Bio: ptr.Ptr("updated")})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "updated", user.Bio)
	assert.Equal(t, "me", cli.GetCurrentUserID())

	var sent map[string]any
	require.NoError(t, json.Unmarshal(api.bodies[0], &sent))
	assert.Equal(t, map[string]any{"bio": "updated"}, sent)
}

func TestLoadSession(t *testing.T) {
	srv, _ := newTestServer(t)

	var events []any
	cli := newTestClient(srv, "token=valid", func(evt any) { events = append(events, evt) })

	user, err := cli.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "me", cli.GetCurrentUserID())
	assert.Contains(t, cli.GetCookieString(), "XSRF-TOKEN=csrf-1")
	require.Len(t, events, 1)
	assert.IsType(t, event.SessionChanged{}, events[0])

	require.NoError(t, cli.Logout(context.Background()))
	assert.False(t, cli.IsLoggedIn())
	assert.Empty(t, cli.GetCurrentUserID())
}

func TestLoadSessionWithoutCookies(t *testing.T) {
	srv, api := newTestServer(t)
	cli := newTestClient(srv, "", nil)

	_, err := cli.LoadSession(context.Background())
	assert.ErrorIs(t, err, profilego.ErrNotLoggedIn)
	assert.Empty(t, api.requests)
}

func TestLoadSessionRejectedCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	cli := newTestClient(srv, "token=expired", nil)

	_, err := cli.LoadSession(context.Background())
	assert.ErrorIs(t, err, profilego.ErrUnauthorized)
}
