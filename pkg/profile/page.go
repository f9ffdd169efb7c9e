package profile

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

// Backend is the remote side of a profile page.
type Backend interface {
	ResourceFetcher
	SkillDeleter
	IntroUpdater
}

type PageOpts struct {
	FetchTimeout time.Duration
	EventHandler EventHandler
}

// Page ties the session, the data store, the view router and the two
// mutation controllers together into one profile page.
type Page struct {
	Session *Session
	Store   *DataStore
	Router  *ViewRouter
	Skills  *SkillListController
	Intro   *IntroEditController

	log zerolog.Logger
}

func NewPage(backend Backend, session *Session, opts PageOpts, log zerolog.Logger) *Page {
	store := NewDataStore(backend, StoreOpts{FetchTimeout: opts.FetchTimeout, EventHandler: opts.EventHandler}, log)
	p := &Page{
		Session: session,
		Store:   store,
		Router:  NewViewRouter(opts.EventHandler),
		Skills:  NewSkillListController(store, backend, opts.EventHandler, log),
		Intro:   NewIntroEditController(session, store, backend, opts.EventHandler, log),
		log:     log.With().Str("component", "profile_page").Logger(),
	}
	p.Router.Handle(ViewSummary, ViewHooks{
		OnEnter: func(t Transition) {
			if t.Back {
				return
			}
			if _, err := p.Intro.OpenFromQuery(t.Location.RawQuery); err != nil {
				p.log.Debug().Err(err).Str("query", t.Location.RawQuery).Msg("Ignoring malformed location query")
			}
		},
		OnExit: func(Transition) { p.Intro.NavigateAway() },
	})
	p.Router.Handle(ViewAllSkills, ViewHooks{
		OnExit: func(Transition) { p.Skills.CloseAdd() },
	})
	return p
}

// Open navigates to rawLocation and makes sure the profile it names is
// loaded. It blocks until the load settles. Without a session user the page
// stays loading and no error is returned.
func (p *Page) Open(ctx context.Context, rawLocation string) (View, error) {
	loc, err := ParseLocation(rawLocation)
	if err != nil {
		return p.Render(), err
	}
	if current, _ := p.Router.Current(); current.ProfileID != "" && current.ProfileID != loc.ProfileID {
		p.Router.Reset()
	}
	p.Router.Navigate(loc)
	err = p.sync(ctx, loc.ProfileID)
	return p.Render(), err
}

// Back returns to the previous location. It reports false when the history
// is empty.
func (p *Page) Back(ctx context.Context) (View, bool, error) {
	loc, _, ok := p.Router.Back()
	if !ok {
		return p.Render(), false, nil
	}
	err := p.sync(ctx, loc.ProfileID)
	return p.Render(), true, err
}

// Sync reloads the current profile if the session user changed since it was
// loaded.
func (p *Page) Sync(ctx context.Context) error {
	loc, _ := p.Router.Current()
	if loc.ProfileID == "" {
		return nil
	}
	return p.sync(ctx, loc.ProfileID)
}

// Reload fetches the current profile again.
func (p *Page) Reload(ctx context.Context) error {
	loc, _ := p.Router.Current()
	if loc.ProfileID == "" {
		return nil
	}
	return p.ignoreNoSession(p.Store.Load(ctx, loc.ProfileID, p.Session.User()))
}

func (p *Page) sync(ctx context.Context, profileID string) error {
	_, err := p.Store.Mount(ctx, profileID, p.Session.User())
	return p.ignoreNoSession(err)
}

func (p *Page) ignoreNoSession(err error) error {
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	return err
}

// Close unmounts the page. In-flight results are discarded.
func (p *Page) Close() {
	p.Router.Reset()
	p.Intro.NavigateAway()
	p.Skills.CloseAdd()
	p.Store.Unmount()
}

func (p *Page) Render() View {
	loc, vs := p.Router.Current()
	return renderView(p.Store.State(), loc, vs, p.Session.User(), p.Skills, p.Intro, p.Router.CanGoBack())
}

func (p *Page) DeleteSkill(ctx context.Context, index int) (*SkillDeletion, error) {
	return p.Skills.Delete(ctx, index)
}

func (p *Page) ToggleAddSkill() bool {
	return p.Skills.ToggleAdd()
}

func (p *Page) EditIntro() {
	p.Intro.Edit()
}

func (p *Page) CancelIntro() {
	p.Intro.Cancel()
}

func (p *Page) SaveIntro(ctx context.Context, edit types.IntroEdit) error {
	_, err := p.Intro.Save(ctx, edit)
	return err
}
