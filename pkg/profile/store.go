package profile

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type Collection int

const (
	CollectionPosts Collection = iota
	CollectionEducations
	CollectionExperiences
	CollectionSkills
)

var AllCollections = []Collection{CollectionPosts, CollectionEducations, CollectionExperiences, CollectionSkills}

func (c Collection) String() string {
	switch c {
	case CollectionPosts:
		return "posts"
	case CollectionEducations:
		return "educations"
	case CollectionExperiences:
		return "experiences"
	case CollectionSkills:
		return "skills"
	default:
		return fmt.Sprintf("collection(%d)", int(c))
	}
}

// ResourceFetcher lists the four collections of a profile. A failed call
// returns an error and no data.
type ResourceFetcher interface {
	ListPosts(ctx context.Context, profileID string) ([]types.Post, error)
	ListEducations(ctx context.Context, profileID string) ([]types.Education, error)
	ListExperiences(ctx context.Context, profileID string) ([]types.Experience, error)
	ListSkills(ctx context.Context, profileID string) ([]types.Skill, error)
}

// State is a snapshot of the store. Collections whose fetch failed are empty
// and have an entry in Errors.
type State struct {
	ProfileID   string
	Loading     bool
	Posts       []types.Post
	Educations  []types.Education
	Experiences []types.Experience
	Skills      []types.Skill
	Errors      map[Collection]error
}

func emptyState(profileID string) State {
	return State{
		ProfileID:   profileID,
		Loading:     true,
		Posts:       []types.Post{},
		Educations:  []types.Education{},
		Experiences: []types.Experience{},
		Skills:      []types.Skill{},
		Errors:      make(map[Collection]error),
	}
}

func (s State) clone() State {
	s.Posts = slices.Clone(s.Posts)
	s.Educations = slices.Clone(s.Educations)
	s.Experiences = slices.Clone(s.Experiences)
	s.Skills = slices.Clone(s.Skills)
	s.Errors = maps.Clone(s.Errors)
	return s
}

func (s State) Err(c Collection) error {
	return s.Errors[c]
}

type StoreOpts struct {
	// FetchTimeout bounds each of the four requests. Zero means no timeout.
	FetchTimeout time.Duration
	EventHandler EventHandler
}

type mountKey struct {
	profileID string
	userID    string
}

// DataStore fetches and holds the collections of one profile at a time.
//
// Every load gets a new generation number. Results are committed only while
// their generation is still current, so a slow response for a profile the
// viewer has already left never overwrites the state of the newer one.
type DataStore struct {
	fetcher      ResourceFetcher
	log          zerolog.Logger
	fetchTimeout time.Duration
	eventHandler EventHandler

	lock       sync.RWMutex
	generation uint64
	mounted    *mountKey
	state      State
	cancel     context.CancelFunc
	// skillRank is the position of each skill in the list as loaded.
	skillRank map[string]int
}

func NewDataStore(fetcher ResourceFetcher, opts StoreOpts, log zerolog.Logger) *DataStore {
	return &DataStore{
		fetcher:      fetcher,
		log:          log.With().Str("component", "profile_store").Logger(),
		fetchTimeout: opts.FetchTimeout,
		eventHandler: opts.EventHandler,
		state:        emptyState(""),
	}
}

// State returns a copy of the current state.
func (s *DataStore) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.clone()
}

func (s *DataStore) IsLoading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.Loading
}

func (s *DataStore) ProfileID() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state.ProfileID
}

func (s *DataStore) Generation() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.generation
}

// Mount loads profileID unless the same profile is already mounted for the
// same session user. It reports whether a load was performed.
func (s *DataStore) Mount(ctx context.Context, profileID string, user *types.User) (bool, error) {
	key := mountKey{profileID: profileID}
	if user != nil {
		key.userID = user.ID
	}

	s.lock.RLock()
	same := s.mounted != nil && *s.mounted == key
	s.lock.RUnlock()
	if same {
		return false, nil
	}
	return true, s.Load(ctx, profileID, user)
}

// Load discards the current state and fetches the four collections of
// profileID concurrently. It returns after all four have settled. Without a
// session user nothing is fetched, the store stays loading and ErrNoSession is
// returned.
func (s *DataStore) Load(ctx context.Context, profileID string, user *types.User) error {
	userID := ""
	if user != nil {
		userID = user.ID
	}
	gen, fetchCtx := s.begin(ctx, mountKey{profileID: profileID, userID: userID})
	log := s.log.With().
		Str("profile_id", profileID).
		Uint64("generation", gen).
		Logger()

	if user == nil {
		log.Debug().Msg("No session user, withholding profile fetches")
		return ErrNoSession
	}

	s.dispatch(event.ProfileLoadStarted{ProfileID: profileID})
	log.Debug().Msg("Fetching profile collections")

	eg, egCtx := errgroup.WithContext(fetchCtx)
	fetchInto(s, eg, egCtx, gen, profileID, CollectionPosts, s.fetcher.ListPosts, func(st *State, v []types.Post) { st.Posts = v })
	fetchInto(s, eg, egCtx, gen, profileID, CollectionEducations, s.fetcher.ListEducations, func(st *State, v []types.Education) { st.Educations = v })
	fetchInto(s, eg, egCtx, gen, profileID, CollectionExperiences, s.fetcher.ListExperiences, func(st *State, v []types.Experience) { st.Experiences = v })
	fetchInto(s, eg, egCtx, gen, profileID, CollectionSkills, s.fetcher.ListSkills, func(st *State, v []types.Skill) {
		st.Skills = v
		s.skillRank = rankSkills(v)
	})
	_ = eg.Wait()

	s.settle(gen, log)
	return nil
}

// Unmount drops the held state. Responses still in flight are discarded.
func (s *DataStore) Unmount() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mounted = nil
	s.state = emptyState("")
	s.skillRank = nil
}

func (s *DataStore) begin(ctx context.Context, key mountKey) (uint64, context.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	s.mounted = &key
	s.state = emptyState(key.profileID)
	s.skillRank = nil
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return s.generation, fetchCtx
}

func fetchInto[T any](s *DataStore, eg *errgroup.Group, ctx context.Context, gen uint64, profileID string, c Collection, fn func(context.Context, string) ([]T, error), assign func(*State, []T)) {
	eg.Go(func() error {
		reqCtx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}
		data, err := fn(reqCtx, profileID)
		s.commit(gen, profileID, c, err, func(st *State) {
			if data == nil {
				data = []T{}
			}
			assign(st, data)
		})
		return nil
	})
}

func (s *DataStore) commit(gen uint64, profileID string, c Collection, err error, apply func(*State)) {
	s.lock.Lock()
	if gen != s.generation {
		s.lock.Unlock()
		s.log.Debug().
			Uint64("generation", gen).
			Str("profile_id", profileID).
			Stringer("collection", c).
			Msg("Discarding stale profile result")
		s.dispatch(event.StaleResultDiscarded{ProfileID: profileID, Collection: c.String()})
		return
	}
	if err != nil {
		s.state.Errors[c] = err
	} else {
		apply(&s.state)
	}
	s.lock.Unlock()

	if err != nil {
		s.log.Warn().Err(err).
			Str("profile_id", profileID).
			Stringer("collection", c).
			Msg("Failed to fetch profile collection")
		s.dispatch(event.CollectionFailed{ProfileID: profileID, Collection: c.String(), Err: err})
	}
}

func (s *DataStore) settle(gen uint64, log zerolog.Logger) {
	s.lock.Lock()
	if gen != s.generation {
		s.lock.Unlock()
		log.Debug().Msg("Profile load superseded before settling")
		return
	}
	s.state.Loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	profileID := s.state.ProfileID
	var failed []string
	for _, c := range AllCollections {
		if s.state.Errors[c] != nil {
			failed = append(failed, c.String())
		}
	}
	s.lock.Unlock()

	log.Info().Strs("failed", failed).Msg("Profile collections settled")
	s.dispatch(event.ProfileLoaded{ProfileID: profileID, Failed: failed})
}

// mutate applies fn to the held state if gen is still current.
func (s *DataStore) mutate(gen uint64, fn func(st *State)) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if gen != s.generation {
		return false
	}
	fn(&s.state)
	return true
}

func (s *DataStore) dispatch(evt any) {
	if s.eventHandler != nil {
		s.eventHandler(evt)
	}
}

type skillRemoval struct {
	gen       uint64
	profileID string
	skill     types.Skill
	index     int
	rank      int
	ranked    bool
}

func rankSkills(skills []types.Skill) map[string]int {
	rank := make(map[string]int, len(skills))
	for i, sk := range skills {
		if _, dup := rank[sk.ID]; !dup {
			rank[sk.ID] = i
		}
	}
	return rank
}

func (s *DataStore) removeSkill(index int) (skillRemoval, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if index < 0 || index >= len(s.state.Skills) {
		return skillRemoval{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.state.Skills))
	}
	rm := skillRemoval{
		gen:       s.generation,
		profileID: s.state.ProfileID,
		skill:     s.state.Skills[index],
		index:     index,
	}
	rm.rank, rm.ranked = s.skillRank[rm.skill.ID]
	s.state.Skills = slices.Delete(s.state.Skills, index, index+1)
	return rm, nil
}

// restoreSkill puts a removed skill back where it was in the loaded list:
// right after the last remaining skill that came before it. A skill that was
// not part of the loaded list goes back to its index, clamped.
func (s *DataStore) restoreSkill(rm skillRemoval) bool {
	return s.mutate(rm.gen, func(st *State) {
		index := min(rm.index, len(st.Skills))
		if rm.ranked {
			index = 0
			for i, sk := range st.Skills {
				if r, ok := s.skillRank[sk.ID]; ok && r < rm.rank {
					index = i + 1
				}
			}
		}
		st.Skills = slices.Insert(st.Skills, index, rm.skill)
	})
}

// applyIntroEdit mirrors education and experience overrides into the held
// collections when the mounted profile is the session user's own. The
// returned function reverts them; it is nil when nothing was applied.
func (s *DataStore) applyIntroEdit(userID string, edit types.IntroEdit) func() bool {
	if edit.Education == nil && edit.Experience == nil {
		return nil
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if userID == "" || s.state.ProfileID != userID {
		return nil
	}
	gen := s.generation
	prevEducations := slices.Clone(s.state.Educations)
	prevExperiences := slices.Clone(s.state.Experiences)
	if edit.Education != nil {
		s.state.Educations = upsertEducation(slices.Clone(s.state.Educations), *edit.Education)
	}
	if edit.Experience != nil {
		s.state.Experiences = upsertExperience(slices.Clone(s.state.Experiences), *edit.Experience)
	}
	return func() bool {
		return s.mutate(gen, func(st *State) {
			st.Educations = prevEducations
			st.Experiences = prevExperiences
		})
	}
}
