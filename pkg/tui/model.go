// Package tui renders a profile page in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beeper/profilehub/pkg/connector"
	"github.com/beeper/profilehub/pkg/profile"
	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type pageOpenedMsg struct{ err error }

type reloadedMsg struct{ err error }

type skillDeletedMsg struct {
	deletion *profile.SkillDeletion
	err      error
}

type introSavedMsg struct{ err error }

// EventMsg carries a connector event into the program.
type EventMsg struct {
	Event any
}

const (
	inputBio = iota
	inputLocation
)

type Model struct {
	ctx    context.Context
	page   *profile.Page
	cfg    *connector.Config
	styles Styles

	location string
	spinner  spinner.Model
	inputs   []textinput.Model
	focus    int
	cursor   int
	status   string
	width    int
	quitting bool
}

func NewModel(ctx context.Context, page *profile.Page, cfg *connector.Config, location string) Model {
	bio := textinput.New()
	bio.Placeholder = "Headline"
	bio.CharLimit = 220
	bio.Width = 50
	loc := textinput.New()
	loc.Placeholder = "Location"
	loc.CharLimit = 100
	loc.Width = 50

	return Model{
		ctx:      ctx,
		page:     page,
		cfg:      cfg,
		styles:   DefaultStyles(),
		location: location,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		inputs:   []textinput.Model{bio, loc},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.open(m.location), m.spinner.Tick)
}

func (m Model) open(location string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.page.Open(m.ctx, location)
		return pageOpenedMsg{err: err}
	}
}

func (m Model) back() tea.Cmd {
	return func() tea.Msg {
		_, _, err := m.page.Back(m.ctx)
		return pageOpenedMsg{err: err}
	}
}

func (m Model) reload() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: m.page.Reload(m.ctx)}
	}
}

func (m Model) sync() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: m.page.Sync(m.ctx)}
	}
}

func (m Model) deleteSkill(index int) tea.Cmd {
	return func() tea.Msg {
		d, err := m.page.DeleteSkill(m.ctx, index)
		return skillDeletedMsg{deletion: d, err: err}
	}
}

func (m Model) saveIntro(edit types.IntroEdit) tea.Cmd {
	return func() tea.Msg {
		return introSavedMsg{err: m.page.SaveIntro(m.ctx, edit)}
	}
}

func (m Model) subLocation(sub string) string {
	loc, _ := m.page.Router.Current()
	loc.SubPath = sub
	loc.RawQuery = ""
	return loc.String()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pageOpenedMsg:
		m.status = errorStatus(msg.err)
		m.clampCursor()
		return m, nil
	case reloadedMsg:
		m.status = errorStatus(msg.err)
		m.clampCursor()
		return m, nil
	case skillDeletedMsg:
		switch {
		case msg.deletion == nil && msg.err != nil:
			m.status = errorStatus(msg.err)
		case msg.deletion != nil && msg.deletion.State == profile.TransitionRolledBack:
			m.status = fmt.Sprintf("Could not delete %s: %s", msg.deletion.Skill.Name, profile.DisplayMessage(msg.err))
		case msg.deletion != nil && msg.deletion.State == profile.TransitionCommitted:
			m.status = fmt.Sprintf("Deleted %s", msg.deletion.Skill.Name)
		}
		m.clampCursor()
		return m, nil
	case introSavedMsg:
		if msg.err != nil {
			m.status = "Could not save intro: " + profile.DisplayMessage(msg.err)
		} else {
			m.status = "Intro saved"
		}
		return m, nil
	case EventMsg:
		if _, ok := msg.Event.(event.SessionChanged); ok {
			return m, m.sync()
		}
		return m, nil
	case tea.KeyMsg:
		if m.page.Intro.IsOpen() {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, vs := m.page.Router.Current()
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "p":
		return m, m.open(m.subLocation("/all-posts"))
	case "s":
		m.cursor = 0
		return m, m.open(m.subLocation("/all-skills"))
	case "b", "esc":
		return m, m.back()
	case "r":
		m.status = ""
		return m, m.reload()
	case "e":
		if vs == profile.ViewSummary {
			m.startEditing()
		}
		return m, textinput.Blink
	case "a":
		if vs == profile.ViewAllSkills {
			m.page.ToggleAddSkill()
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "d":
		if vs == profile.ViewAllSkills && len(m.page.Store.State().Skills) > 0 {
			return m, m.deleteSkill(m.cursor)
		}
	}
	return m, nil
}

func (m *Model) startEditing() {
	m.page.EditIntro()
	if user := m.page.Session.User(); user != nil {
		m.inputs[inputBio].SetValue(user.Bio)
		m.inputs[inputLocation].SetValue(user.Location)
	}
	m.focus = inputBio
	m.inputs[inputBio].Focus()
	m.inputs[inputLocation].Blur()
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.page.CancelIntro()
		return m, nil
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	case "enter":
		bio := m.inputs[inputBio].Value()
		location := m.inputs[inputLocation].Value()
		return m, m.saveIntro(types.IntroEdit{Bio: &bio, Location: &location})
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.page.Store.State().Skills)
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func errorStatus(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + profile.DisplayMessage(err)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	doc := m.cfg.MapView(m.page.Render())
	var b strings.Builder
	if doc.Loading {
		b.WriteString(m.spinner.View() + " Loading profile...\n")
		b.WriteString(m.styles.Footer.Render("r reload • q quit"))
		return b.String()
	}

	switch doc.View {
	case profile.ViewSummary.String():
		m.renderSummary(&b, doc)
	case profile.ViewAllPosts.String():
		m.renderAllPosts(&b, doc)
	case profile.ViewAllSkills.String():
		m.renderAllSkills(&b, doc)
	default:
		b.WriteString(m.styles.Title.Render("Page not found") + "\n")
		b.WriteString(m.styles.Muted.Render(doc.Location) + "\n")
		b.WriteString(m.styles.Footer.Render("b back • q quit"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.StatusBar.Render(m.status))
	}
	return b.String()
}

func (m Model) renderErrors(b *strings.Builder, doc connector.ViewDocument, collection string) {
	if msg, ok := doc.Errors[collection]; ok {
		b.WriteString(m.styles.Error.Render(msg) + "\n")
	}
}

func (m Model) renderSummary(b *strings.Builder, doc connector.ViewDocument) {
	h := doc.Header
	if h != nil {
		b.WriteString(m.styles.Header.Render(h.DisplayName) + "\n")
		if h.Bio != "" {
			b.WriteString(m.styles.Body.Render(h.Bio) + "\n")
		}
		var meta []string
		if h.LatestCompany != "" {
			meta = append(meta, h.LatestCompany)
		}
		if h.LatestSchool != "" {
			meta = append(meta, h.LatestSchool)
		}
		if h.Location != "" {
			meta = append(meta, h.Location)
		}
		if len(meta) > 0 {
			b.WriteString(m.styles.Subtitle.Render(strings.Join(meta, " · ")) + "\n")
		}
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %d profile views", connector.FormatConnections(h.Connections), h.Views)) + "\n")
		if h.About != "" {
			b.WriteString(m.styles.Section.Render("About") + "\n" + h.About + "\n")
		}
	}

	if doc.IntroOpen {
		b.WriteString(m.styles.Overlay.Render("Edit intro\n" + m.inputs[inputBio].View() + "\n" + m.inputs[inputLocation].View()))
		b.WriteString("\n" + m.styles.Footer.Render("tab next field • enter save • esc cancel"))
		return
	}

	followers := 0
	if h != nil {
		followers = h.Followers
	}
	b.WriteString(m.styles.Section.Render(fmt.Sprintf("Activity · %d followers", followers)) + "\n")
	m.renderErrors(b, doc, "posts")
	for _, p := range doc.Posts {
		b.WriteString("  " + p.Content + "\n")
	}
	if doc.PostCount > len(doc.Posts) {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  Show all %d posts (p)", doc.PostCount)) + "\n")
	}

	b.WriteString(m.styles.Section.Render("Experience") + "\n")
	m.renderErrors(b, doc, "experiences")
	for _, e := range doc.Experiences {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", e.Title, m.styles.Muted.Render(e.Company), m.styles.Muted.Render(e.Period)))
	}

	b.WriteString(m.styles.Section.Render("Education") + "\n")
	m.renderErrors(b, doc, "educations")
	for _, e := range doc.Educations {
		b.WriteString(fmt.Sprintf("  %s %s %s\n", e.School, m.styles.Muted.Render(e.Degree), m.styles.Muted.Render(e.Period)))
	}

	b.WriteString(m.styles.Section.Render("Skills") + "\n")
	m.renderErrors(b, doc, "skills")
	for _, s := range doc.Skills {
		b.WriteString("  " + s.Name + "\n")
	}
	if doc.SkillCount > len(doc.Skills) {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  Show all %d skills (s)", doc.SkillCount)) + "\n")
	}
	b.WriteString(m.styles.Footer.Render("p posts • s skills • e edit intro • r reload • q quit"))
}

func (m Model) renderAllPosts(b *strings.Builder, doc connector.ViewDocument) {
	b.WriteString(m.styles.Title.Render("All activity") + "\n")
	m.renderErrors(b, doc, "posts")
	if len(doc.Posts) == 0 {
		b.WriteString(m.styles.Muted.Render("No posts yet") + "\n")
	}
	for _, p := range doc.Posts {
		b.WriteString("  " + p.Content + "\n")
	}
	b.WriteString(m.styles.Footer.Render("b back • r reload • q quit"))
}

func (m Model) renderAllSkills(b *strings.Builder, doc connector.ViewDocument) {
	b.WriteString(m.styles.Title.Render("Skills") + "\n")
	m.renderErrors(b, doc, "skills")
	for i, s := range doc.Skills {
		line := s.Name
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		for _, used := range s.UsedAt {
			b.WriteString(m.styles.Muted.Render("    "+used) + "\n")
		}
		if s.Endorsements != "" {
			b.WriteString(m.styles.Muted.Render("    "+s.Endorsements) + "\n")
		}
	}
	if len(doc.Deleting) > 0 {
		b.WriteString(m.styles.StatusBar.Render("Deleting "+strings.Join(doc.Deleting, ", ")) + "\n")
	}
	if doc.AddSkillOpen {
		b.WriteString(m.styles.Overlay.Render("Add skill") + "\n")
	}
	b.WriteString(m.styles.Footer.Render("↑/↓ select • d delete • a add • b back • q quit"))
}
