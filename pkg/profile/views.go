package profile

import (
	"fmt"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

// SummaryLimit is how many posts and skills the summary view shows.
const SummaryLimit = 3

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit:limit]
	}
	return items
}

type Header struct {
	UserID          string
	FirstName       string
	LastName        string
	Bio             string
	About           string
	Location        string
	Avatar          string
	BackgroundImage string
	LatestSchool    string
	LatestCompany   string
	Connections     int
	Followers       int
	Views           int
	IsOwnProfile    bool
}

type SummaryView struct {
	Header      Header
	Posts       []types.Post
	PostCount   int
	Educations  []types.Education
	Experiences []types.Experience
	Skills      []types.Skill
	SkillCount  int
	IntroOpen   bool
}

type AllPostsView struct {
	Posts     []types.Post
	CanGoBack bool
}

type SkillItem struct {
	Skill        types.Skill
	UsedAt       []string
	Endorsements int
}

type AllSkillsView struct {
	Skills    []SkillItem
	AddOpen   bool
	Deleting  []string
	CanGoBack bool
}

type NotFoundView struct {
	Path string
}

// View is everything a presentation layer needs to draw the current page.
// Exactly one of the per-view fields is set.
type View struct {
	State     ViewState
	Location  Location
	Loading   bool
	Errors    map[string]string
	Summary   *SummaryView
	AllPosts  *AllPostsView
	AllSkills *AllSkillsView
	NotFound  *NotFoundView
}

func buildHeader(user *types.User, st State) Header {
	h := Header{
		LatestSchool:  LatestSchoolName(st.Educations),
		LatestCompany: LatestCompanyName(st.Experiences),
	}
	if user == nil {
		return h
	}
	h.UserID = user.ID
	h.FirstName = user.FirstName
	h.LastName = user.LastName
	h.Bio = user.Bio
	h.About = user.About
	h.Location = user.Location
	h.Avatar = user.Avatar
	h.BackgroundImage = user.BackgroundImage
	h.Connections = len(user.Followers) + len(user.Following)
	h.Followers = len(user.Followers)
	h.Views = user.Views
	h.IsOwnProfile = user.ID == st.ProfileID
	return h
}

func buildSkillItems(skills []types.Skill) []SkillItem {
	items := make([]SkillItem, len(skills))
	for i, skill := range skills {
		item := SkillItem{Skill: skill, Endorsements: len(skill.EndorsedBy)}
		for _, ref := range skill.References {
			item.UsedAt = append(item.UsedAt, fmt.Sprintf("%s at %s", skill.Name, ref.Name))
		}
		items[i] = item
	}
	return items
}

func renderView(st State, loc Location, vs ViewState, user *types.User, skills *SkillListController, intro *IntroEditController, canGoBack bool) View {
	v := View{
		State:    vs,
		Location: loc,
		Loading:  st.Loading,
		Errors:   make(map[string]string, len(st.Errors)),
	}
	for c, err := range st.Errors {
		v.Errors[c.String()] = DisplayMessage(err)
	}

	switch vs {
	case ViewSummary:
		v.Summary = &SummaryView{
			Header:      buildHeader(user, st),
			Posts:       truncate(st.Posts, SummaryLimit),
			PostCount:   len(st.Posts),
			Educations:  st.Educations,
			Experiences: st.Experiences,
			Skills:      truncate(st.Skills, SummaryLimit),
			SkillCount:  len(st.Skills),
			IntroOpen:   intro.IsOpen(),
		}
	case ViewAllPosts:
		v.AllPosts = &AllPostsView{Posts: st.Posts, CanGoBack: canGoBack}
	case ViewAllSkills:
		allSkills := &AllSkillsView{
			Skills:    buildSkillItems(st.Skills),
			AddOpen:   skills.AddOpen(),
			CanGoBack: canGoBack,
		}
		for _, d := range skills.Pending() {
			allSkills.Deleting = append(allSkills.Deleting, d.Skill.Name)
		}
		v.AllSkills = allSkills
	default:
		v.NotFound = &NotFoundView{Path: loc.String()}
	}
	return v
}
