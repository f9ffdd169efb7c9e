package connector

import (
	"github.com/beeper/profilehub/pkg/profilego/event"
)

// HandleClientEvent keeps the session in sync with the API client.
func (pc *ProfileConnector) HandleClientEvent(rawEvt any) {
	switch evtData := rawEvt.(type) {
	case event.SessionChanged:
		pc.Log.Info().
			Str("user_id", userID(evtData)).
			Msg("Session user changed")
		pc.Session.Set(evtData.User)
	case event.LoggedOut:
		pc.Log.Info().Msg("Logged out")
		pc.Session.Clear()
	default:
		pc.notify(rawEvt)
	}
}

// HandlePageEvent logs page lifecycle events and forwards them to listeners.
func (pc *ProfileConnector) HandlePageEvent(rawEvt any) {
	switch evtData := rawEvt.(type) {
	case event.ProfileLoaded:
		pc.Log.Debug().
			Str("profile_id", evtData.ProfileID).
			Strs("failed", evtData.Failed).
			Msg("Profile page ready")
	case event.SkillRestored:
		pc.Log.Debug().
			Str("mutation_id", evtData.MutationID.String()).
			Str("skill", evtData.Skill.Name).
			Msg("Skill restored after failed delete")
	case event.IntroReverted:
		pc.Log.Debug().
			Str("mutation_id", evtData.MutationID.String()).
			Msg("Intro edit reverted")
	case event.ViewChanged:
		pc.Log.Trace().
			Str("profile_id", evtData.ProfileID).
			Str("from", evtData.From).
			Str("to", evtData.To).
			Msg("View changed")
	}
	pc.notify(rawEvt)
}

func userID(evt event.SessionChanged) string {
	if evt.User == nil {
		return ""
	}
	return evt.User.ID
}
