package event

import (
	"github.com/google/uuid"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

type SessionChanged struct {
	User *types.User
}

type ProfileLoadStarted struct {
	ProfileID string
}

// ProfileLoaded is emitted once all four collections of a profile have settled.
type ProfileLoaded struct {
	ProfileID string
	Failed    []string
}

type CollectionFailed struct {
	ProfileID  string
	Collection string
	Err        error
}

type StaleResultDiscarded struct {
	ProfileID  string
	Collection string
}

type SkillDeleted struct {
	MutationID uuid.UUID
	ProfileID  string
	Skill      types.Skill
	Index      int
}

type SkillRestored struct {
	MutationID uuid.UUID
	ProfileID  string
	Skill      types.Skill
	Index      int
	Err        error
}

type IntroSaved struct {
	MutationID uuid.UUID
	User       *types.User
}

type IntroReverted struct {
	MutationID uuid.UUID
	Err        error
}

type ViewChanged struct {
	ProfileID string
	From      string
	To        string
}

type LoggedOut struct{}
