package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/profilehub/pkg/profilego/event"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		want    Location
		wantErr bool
	}{
		{raw: "/profile/u1", want: Location{ProfileID: "u1", SubPath: "/"}},
		{raw: "/profile/u1/", want: Location{ProfileID: "u1", SubPath: "/"}},
		{raw: "/profile/u1/all-posts", want: Location{ProfileID: "u1", SubPath: "/all-posts"}},
		{raw: "/profile/u1?edit", want: Location{ProfileID: "u1", SubPath: "/", RawQuery: "edit"}},
		{raw: "/profile/u1/a/b", want: Location{ProfileID: "u1", SubPath: "/a/b"}},
		{raw: "/profile/", wantErr: true},
		{raw: "/feed", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotProfileLocation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "/profile/u1", Location{ProfileID: "u1", SubPath: "/"}.String())
	assert.Equal(t, "/profile/u1/all-skills?edit", Location{ProfileID: "u1", SubPath: "/all-skills/", RawQuery: "edit"}.String())
}

func TestResolveView(t *testing.T) {
	assert.Equal(t, ViewSummary, ResolveView("/"))
	assert.Equal(t, ViewSummary, ResolveView(""))
	assert.Equal(t, ViewAllPosts, ResolveView("/all-posts"))
	assert.Equal(t, ViewAllSkills, ResolveView("/all-skills/"))
	assert.Equal(t, ViewNotFound, ResolveView("/all-posts/extra"))
	assert.Equal(t, ViewNotFound, ResolveView("/settings"))
}

func TestRouterHooksAndHistory(t *testing.T) {
	events := &eventLog{}
	r := NewViewRouter(events.handle)
	var trace []string
	for _, vs := range []ViewState{ViewSummary, ViewAllPosts, ViewAllSkills} {
		r.Handle(vs, ViewHooks{
			OnEnter: func(t Transition) {
				if t.Back {
					trace = append(trace, "back:"+vs.String())
				} else {
					trace = append(trace, "enter:"+vs.String())
				}
			},
			OnExit: func(Transition) { trace = append(trace, "exit:"+vs.String()) },
		})
	}

	assert.False(t, r.CanGoBack())
	r.Navigate(Location{ProfileID: "u1", SubPath: "/"})
	r.Navigate(Location{ProfileID: "u1", SubPath: "/all-skills"})
	assert.True(t, r.CanGoBack())

	loc, vs, ok := r.Back()
	require.True(t, ok)
	assert.Equal(t, ViewSummary, vs)
	assert.Equal(t, "u1", loc.ProfileID)

	_, _, ok = r.Back()
	assert.False(t, ok)

	assert.Equal(t, []string{
		"enter:summary",
		"exit:summary", "enter:all-skills",
		"exit:all-skills", "back:summary",
	}, trace)

	changed := eventsOf[event.ViewChanged](events)
	require.Len(t, changed, 3)
	assert.Equal(t, "all-skills", changed[1].To)

	r.Reset()
	assert.Equal(t, "exit:summary", trace[len(trace)-1])
	_, vs = r.Current()
	assert.Equal(t, ViewSummary, vs)
	assert.False(t, r.CanGoBack())
}
