package profile

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/routing/query"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type IntroUpdater interface {
	UpdateIntro(ctx context.Context, edit types.IntroEdit) (*types.User, error)
}

type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayOpen
)

func (o OverlayState) String() string {
	if o == OverlayOpen {
		return "open"
	}
	return "closed"
}

// IntroEditController is the open/closed state machine of the edit-intro
// overlay and the commit path of its form.
type IntroEditController struct {
	session      *Session
	store        *DataStore
	updater      IntroUpdater
	log          zerolog.Logger
	eventHandler EventHandler

	lock  sync.Mutex
	state OverlayState
}

func NewIntroEditController(session *Session, store *DataStore, updater IntroUpdater, handler EventHandler, log zerolog.Logger) *IntroEditController {
	return &IntroEditController{
		session:      session,
		store:        store,
		updater:      updater,
		log:          log.With().Str("component", "intro_edit").Logger(),
		eventHandler: handler,
	}
}

func (c *IntroEditController) State() OverlayState {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

func (c *IntroEditController) IsOpen() bool {
	return c.State() == OverlayOpen
}

func (c *IntroEditController) Edit() {
	c.setState(OverlayOpen)
}

// OpenFromQuery opens the overlay if the location query carries an edit flag.
func (c *IntroEditController) OpenFromQuery(rawQuery string) (bool, error) {
	_, hasEdit, err := query.ParseProfileLocationQuery(rawQuery)
	if err != nil {
		return false, err
	}
	if hasEdit {
		c.setState(OverlayOpen)
	}
	return hasEdit, nil
}

func (c *IntroEditController) Cancel() {
	c.setState(OverlayClosed)
}

func (c *IntroEditController) NavigateAway() {
	c.setState(OverlayClosed)
}

func (c *IntroEditController) setState(state OverlayState) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.state = state
}

// Save merges edit into the session user and closes the overlay, then sends
// it to the backend. A backend failure reverts the merged fields.
func (c *IntroEditController) Save(ctx context.Context, edit types.IntroEdit) (uuid.UUID, error) {
	c.lock.Lock()
	if c.state != OverlayOpen {
		c.lock.Unlock()
		return uuid.Nil, ErrNotOpen
	}
	c.state = OverlayClosed
	c.lock.Unlock()

	mutationID := uuid.New()
	log := c.log.With().Str("mutation_id", mutationID.String()).Logger()

	previous, ok := c.session.Update(func(u *types.User) {
		applyIntroEdit(u, edit)
	})
	if !ok {
		return mutationID, ErrNoSession
	}
	restoreStore := c.store.applyIntroEdit(previous.ID, edit)

	_, err := c.updater.UpdateIntro(ctx, edit)
	if err != nil {
		c.session.Update(func(u *types.User) {
			if u.ID != previous.ID {
				return
			}
			u.Bio = previous.Bio
			u.Location = previous.Location
			u.Educations = previous.Educations
			u.Experiences = previous.Experiences
		})
		if restoreStore != nil {
			restoreStore()
		}
		log.Warn().Err(err).Msg("Failed to save intro, reverted local changes")
		c.dispatch(event.IntroReverted{MutationID: mutationID, Err: err})
		return mutationID, err
	}

	log.Info().Msg("Saved intro")
	c.dispatch(event.IntroSaved{MutationID: mutationID, User: c.session.User()})
	return mutationID, nil
}

func (c *IntroEditController) dispatch(evt any) {
	if c.eventHandler != nil {
		c.eventHandler(evt)
	}
}

func applyIntroEdit(u *types.User, edit types.IntroEdit) {
	if edit.Bio != nil {
		u.Bio = *edit.Bio
	}
	if edit.Location != nil {
		u.Location = *edit.Location
	}
	if edit.Education != nil {
		u.Educations = upsertEducation(u.Educations, *edit.Education)
	}
	if edit.Experience != nil {
		u.Experiences = upsertExperience(u.Experiences, *edit.Experience)
	}
}

func upsertEducation(list []types.Education, e types.Education) []types.Education {
	if e.ID != "" {
		if i := slices.IndexFunc(list, func(x types.Education) bool { return x.ID == e.ID }); i >= 0 {
			list[i] = e
			return list
		}
	}
	return append(list, e)
}

func upsertExperience(list []types.Experience, e types.Experience) []types.Experience {
	if e.ID != "" {
		if i := slices.IndexFunc(list, func(x types.Experience) bool { return x.ID == e.ID }); i >= 0 {
			list[i] = e
			return list
		}
	}
	return append(list, e)
}
