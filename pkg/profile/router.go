package profile

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/beeper/profilehub/pkg/profilego/event"
)

type ViewState int

const (
	ViewSummary ViewState = iota
	ViewAllPosts
	ViewAllSkills
	ViewNotFound
)

func (v ViewState) String() string {
	switch v {
	case ViewSummary:
		return "summary"
	case ViewAllPosts:
		return "all-posts"
	case ViewAllSkills:
		return "all-skills"
	default:
		return "not-found"
	}
}

const ProfileRoot = "/profile/"

var ErrNotProfileLocation = errors.New("location is not under " + ProfileRoot)

// Location is a position inside a profile page: the profile identifier, the
// sub-path below the profile root and the raw query string.
type Location struct {
	ProfileID string
	SubPath   string
	RawQuery  string
}

func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	rest, ok := strings.CutPrefix(u.Path, ProfileRoot)
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrNotProfileLocation, raw)
	}
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		return Location{}, fmt.Errorf("%w: missing profile id in %q", ErrNotProfileLocation, raw)
	}
	return Location{ProfileID: id, SubPath: "/" + sub, RawQuery: u.RawQuery}, nil
}

func (l Location) String() string {
	out := ProfileRoot + l.ProfileID
	if sub := strings.Trim(l.SubPath, "/"); sub != "" {
		out += "/" + sub
	}
	if l.RawQuery != "" {
		out += "?" + l.RawQuery
	}
	return out
}

// ResolveView maps a sub-path below the profile root to its view.
func ResolveView(subPath string) ViewState {
	switch strings.Trim(subPath, "/") {
	case "":
		return ViewSummary
	case "all-posts":
		return ViewAllPosts
	case "all-skills":
		return ViewAllSkills
	default:
		return ViewNotFound
	}
}

type Transition struct {
	From     ViewState
	To       ViewState
	Location Location
	// Back is set when the transition came from history navigation.
	Back bool
	// Initial is set for the first location after a reset.
	Initial bool
}

type ViewHooks struct {
	OnEnter func(t Transition)
	OnExit  func(t Transition)
}

// ViewRouter keeps the navigation history of one profile page and runs the
// entry and exit actions of each view. Exit actions run only when the view
// actually changes; entry actions run on every arrival.
type ViewRouter struct {
	lock         sync.Mutex
	history      []Location
	current      ViewState
	hooks        map[ViewState]ViewHooks
	eventHandler EventHandler
}

func NewViewRouter(handler EventHandler) *ViewRouter {
	return &ViewRouter{
		hooks:        make(map[ViewState]ViewHooks),
		eventHandler: handler,
	}
}

func (r *ViewRouter) Handle(state ViewState, hooks ViewHooks) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.hooks[state] = hooks
}

func (r *ViewRouter) Navigate(loc Location) ViewState {
	r.lock.Lock()
	t := Transition{
		From:     r.current,
		To:       ResolveView(loc.SubPath),
		Location: loc,
		Initial:  len(r.history) == 0,
	}
	r.history = append(r.history, loc)
	r.current = t.To
	exit, enter := r.hooksFor(t)
	r.lock.Unlock()

	r.run(t, exit, enter)
	return t.To
}

// Back returns to the previous history entry. It reports false when there is
// nothing to go back to.
func (r *ViewRouter) Back() (Location, ViewState, bool) {
	r.lock.Lock()
	if len(r.history) < 2 {
		r.lock.Unlock()
		return Location{}, r.current, false
	}
	r.history = r.history[:len(r.history)-1]
	loc := r.history[len(r.history)-1]
	t := Transition{
		From:     r.current,
		To:       ResolveView(loc.SubPath),
		Location: loc,
		Back:     true,
	}
	r.current = t.To
	exit, enter := r.hooksFor(t)
	r.lock.Unlock()

	r.run(t, exit, enter)
	return loc, t.To, true
}

func (r *ViewRouter) Current() (Location, ViewState) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.history) == 0 {
		return Location{}, r.current
	}
	return r.history[len(r.history)-1], r.current
}

func (r *ViewRouter) CanGoBack() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.history) > 1
}

// Reset forgets the history and runs the exit action of the current view.
func (r *ViewRouter) Reset() {
	r.lock.Lock()
	hadHistory := len(r.history) > 0
	t := Transition{From: r.current, To: ViewSummary}
	exit := r.hooks[r.current].OnExit
	r.history = nil
	r.current = ViewSummary
	r.lock.Unlock()

	if hadHistory && exit != nil {
		exit(t)
	}
}

func (r *ViewRouter) hooksFor(t Transition) (exit, enter func(Transition)) {
	if t.From != t.To && !t.Initial {
		exit = r.hooks[t.From].OnExit
	}
	return exit, r.hooks[t.To].OnEnter
}

func (r *ViewRouter) run(t Transition, exit, enter func(Transition)) {
	if exit != nil {
		exit(t)
	}
	if enter != nil {
		enter(t)
	}
	if r.eventHandler != nil && (t.From != t.To || t.Initial) {
		r.eventHandler(event.ViewChanged{ProfileID: t.Location.ProfileID, From: t.From.String(), To: t.To.String()})
	}
}
