package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type SkillDeleter interface {
	DeleteSkill(ctx context.Context, profileID, skillID string) error
}

type TransitionState int

const (
	TransitionPending TransitionState = iota
	TransitionCommitted
	TransitionRolledBack
	// TransitionDiscarded means the mutation failed after the viewer moved to
	// another profile, so there was nothing left to roll back.
	TransitionDiscarded
)

func (t TransitionState) String() string {
	switch t {
	case TransitionPending:
		return "pending"
	case TransitionCommitted:
		return "committed"
	case TransitionRolledBack:
		return "rolled-back"
	case TransitionDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

type SkillDeletion struct {
	ID        uuid.UUID
	ProfileID string
	Skill     types.Skill
	Index     int
	State     TransitionState
	Err       error
}

// SkillListController drives the all-skills view: optimistic deletes and the
// add-skill overlay. The overlay flag is independent of deletes.
type SkillListController struct {
	store        *DataStore
	deleter      SkillDeleter
	log          zerolog.Logger
	eventHandler EventHandler

	lock    sync.Mutex
	addOpen bool
	pending map[uuid.UUID]SkillDeletion
}

func NewSkillListController(store *DataStore, deleter SkillDeleter, handler EventHandler, log zerolog.Logger) *SkillListController {
	return &SkillListController{
		store:        store,
		deleter:      deleter,
		log:          log.With().Str("component", "skill_list").Logger(),
		eventHandler: handler,
		pending:      make(map[uuid.UUID]SkillDeletion),
	}
}

func (c *SkillListController) ToggleAdd() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.addOpen = !c.addOpen
	return c.addOpen
}

func (c *SkillListController) CloseAdd() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.addOpen = false
}

func (c *SkillListController) AddOpen() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.addOpen
}

// Pending returns the deletions still waiting for the backend.
func (c *SkillListController) Pending() []SkillDeletion {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]SkillDeletion, 0, len(c.pending))
	for _, d := range c.pending {
		out = append(out, d)
	}
	return out
}

// Delete removes the skill at index from the held collection right away and
// then asks the backend to delete it. If the backend refuses, the skill is put
// back in its loaded order relative to the skills still held. The returned deletion is non-nil whenever the
// optimistic removal happened, including when err is non-nil.
func (c *SkillListController) Delete(ctx context.Context, index int) (*SkillDeletion, error) {
	rm, err := c.store.removeSkill(index)
	if err != nil {
		return nil, err
	}

	d := SkillDeletion{
		ID:        uuid.New(),
		ProfileID: rm.profileID,
		Skill:     rm.skill,
		Index:     rm.index,
		State:     TransitionPending,
	}
	log := c.log.With().
		Str("mutation_id", d.ID.String()).
		Str("profile_id", d.ProfileID).
		Str("skill_id", d.Skill.ID).
		Int("index", d.Index).
		Logger()

	c.lock.Lock()
	c.pending[d.ID] = d
	c.lock.Unlock()

	err = c.deleter.DeleteSkill(ctx, rm.profileID, rm.skill.ID)

	c.lock.Lock()
	delete(c.pending, d.ID)
	c.lock.Unlock()

	if err == nil {
		d.State = TransitionCommitted
		log.Info().Msg("Deleted skill")
		c.dispatch(event.SkillDeleted{MutationID: d.ID, ProfileID: d.ProfileID, Skill: d.Skill, Index: d.Index})
		return &d, nil
	}

	d.Err = err
	if c.store.restoreSkill(rm) {
		d.State = TransitionRolledBack
		log.Warn().Err(err).Msg("Skill deletion failed, restored skill")
		c.dispatch(event.SkillRestored{MutationID: d.ID, ProfileID: d.ProfileID, Skill: d.Skill, Index: d.Index, Err: err})
	} else {
		d.State = TransitionDiscarded
		log.Debug().Err(err).Msg("Skill deletion failed after profile changed, nothing to restore")
	}
	return &d, err
}

func (c *SkillListController) dispatch(evt any) {
	if c.eventHandler != nil {
		c.eventHandler(evt)
	}
}
