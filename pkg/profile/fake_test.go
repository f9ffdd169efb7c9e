package profile

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type profileData struct {
	posts       []types.Post
	educations  []types.Education
	experiences []types.Experience
	skills      []types.Skill
}

// fakeBackend serves canned profile data. A request whose key has a gate
// blocks until the gate is closed, regardless of cancellation, like a server
// that answers late.
type fakeBackend struct {
	lock    sync.Mutex
	data    map[string]profileData
	fail    map[string]error
	gates   map[string]chan struct{}
	started chan string

	deleteErr   error
	deleteGate  chan struct{}
	deleteErrs  map[string]error
	deleteGates map[string]chan struct{}
	deleted     []string

	updateErr error
	updates   []types.IntroEdit
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		data:    make(map[string]profileData),
		fail:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 64),
	}
}

func key(profileID string, c Collection) string {
	return profileID + "/" + c.String()
}

func (b *fakeBackend) gate(profileID string, c Collection) chan struct{} {
	b.lock.Lock()
	defer b.lock.Unlock()
	ch := make(chan struct{})
	b.gates[key(profileID, c)] = ch
	return ch
}

func (b *fakeBackend) wait(profileID string, c Collection) (profileData, error) {
	k := key(profileID, c)
	b.lock.Lock()
	g := b.gates[k]
	b.lock.Unlock()
	select {
	case b.started <- k:
	default:
	}
	if g != nil {
		<-g
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if err := b.fail[k]; err != nil {
		return profileData{}, err
	}
	return b.data[profileID], nil
}

func (b *fakeBackend) ListPosts(_ context.Context, profileID string) ([]types.Post, error) {
	d, err := b.wait(profileID, CollectionPosts)
	return d.posts, err
}

func (b *fakeBackend) ListEducations(_ context.Context, profileID string) ([]types.Education, error) {
	d, err := b.wait(profileID, CollectionEducations)
	return d.educations, err
}

func (b *fakeBackend) ListExperiences(_ context.Context, profileID string) ([]types.Experience, error) {
	d, err := b.wait(profileID, CollectionExperiences)
	return d.experiences, err
}

func (b *fakeBackend) ListSkills(_ context.Context, profileID string) ([]types.Skill, error) {
	d, err := b.wait(profileID, CollectionSkills)
	return d.skills, err
}

func (b *fakeBackend) DeleteSkill(_ context.Context, _, skillID string) error {
	b.lock.Lock()
	g := b.deleteGate
	if perSkill, ok := b.deleteGates[skillID]; ok {
		g = perSkill
	}
	b.lock.Unlock()
	if g != nil {
		<-g
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	b.deleted = append(b.deleted, skillID)
	if err, ok := b.deleteErrs[skillID]; ok {
		return err
	}
	return b.deleteErr
}

func (b *fakeBackend) UpdateIntro(_ context.Context, edit types.IntroEdit) (*types.User, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.updates = append(b.updates, edit)
	if b.updateErr != nil {
		return nil, b.updateErr
	}
	return &types.User{ID: "me"}, nil
}

type eventLog struct {
	lock   sync.Mutex
	events []any
}

func (l *eventLog) handle(evt any) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.events = append(l.events, evt)
}

func eventsOf[T any](l *eventLog) []T {
	l.lock.Lock()
	defer l.lock.Unlock()
	var out []T
	for _, evt := range l.events {
		if v, ok := evt.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func skillsNamed(names ...string) []types.Skill {
	out := make([]types.Skill, len(names))
	for i, name := range names {
		out[i] = types.Skill{ID: fmt.Sprintf("s-%s", name), Name: name}
	}
	return out
}

func skillNames(skills []types.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = s.Name
	}
	return out
}

var me = &types.User{ID: "me", FirstName: "Ada", LastName: "Lovelace", Bio: "engineer"}

func newTestStore(b *fakeBackend, events *eventLog) *DataStore {
	return NewDataStore(b, StoreOpts{EventHandler: events.handle}, zerolog.Nop())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
