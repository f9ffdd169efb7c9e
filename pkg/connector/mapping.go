package connector

import (
	"fmt"
	"strings"
	"time"

	"github.com/beeper/profilehub/pkg/profile"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type HeaderInfo struct {
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Bio             string `json:"bio,omitempty"`
	About           string `json:"about,omitempty"`
	Location        string `json:"location,omitempty"`
	Avatar          string `json:"avatar,omitempty"`
	BackgroundImage string `json:"background_image,omitempty"`
	LatestSchool    string `json:"latest_school,omitempty"`
	LatestCompany   string `json:"latest_company,omitempty"`
	Connections     int    `json:"connections"`
	Followers       int    `json:"followers"`
	Views           int    `json:"views"`
	IsOwnProfile    bool   `json:"is_own_profile"`
}

type PostInfo struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type EducationInfo struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Period string `json:"period,omitempty"`
}

type ExperienceInfo struct {
	Company string `json:"company"`
	Title   string `json:"title,omitempty"`
	Period  string `json:"period,omitempty"`
}

type SkillInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	UsedAt       []string `json:"used_at,omitempty"`
	Endorsements string   `json:"endorsements,omitempty"`
}

// ViewDocument is the presentation form of a rendered profile page, shared
// by the JSON endpoints and the terminal UI.
type ViewDocument struct {
	View         string            `json:"view"`
	Location     string            `json:"location"`
	Loading      bool              `json:"loading"`
	Errors       map[string]string `json:"errors,omitempty"`
	Header       *HeaderInfo       `json:"header,omitempty"`
	Posts        []PostInfo        `json:"posts,omitempty"`
	PostCount    int               `json:"post_count,omitempty"`
	Educations   []EducationInfo   `json:"educations,omitempty"`
	Experiences  []ExperienceInfo  `json:"experiences,omitempty"`
	Skills       []SkillInfo       `json:"skills,omitempty"`
	SkillCount   int               `json:"skill_count,omitempty"`
	Deleting     []string          `json:"deleting,omitempty"`
	IntroOpen    bool              `json:"intro_open,omitempty"`
	AddSkillOpen bool              `json:"add_skill_open,omitempty"`
	CanGoBack    bool              `json:"can_go_back,omitempty"`
}

func (c *Config) MapHeader(h profile.Header) HeaderInfo {
	return HeaderInfo{
		UserID:          h.UserID,
		DisplayName:     c.FormatDisplayname(h.FirstName, h.LastName),
		Bio:             h.Bio,
		About:           h.About,
		Location:        h.Location,
		Avatar:          h.Avatar,
		BackgroundImage: h.BackgroundImage,
		LatestSchool:    h.LatestSchool,
		LatestCompany:   h.LatestCompany,
		Connections:     h.Connections,
		Followers:       h.Followers,
		Views:           h.Views,
		IsOwnProfile:    h.IsOwnProfile,
	}
}

func (c *Config) MapPost(p types.Post) PostInfo {
	return PostInfo{
		ID:        p.ID,
		Author:    c.FormatDisplayname(p.Author.FirstName, p.Author.LastName),
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func MapEducation(e types.Education) EducationInfo {
	return EducationInfo{
		School: e.School.Name,
		Degree: e.Degree,
		Period: FormatPeriod(string(e.StartYear), string(e.EndYear)),
	}
}

func MapExperience(e types.Experience) ExperienceInfo {
	end := "Present"
	if e.EndYear != nil {
		end = *e.EndYear
	}
	start := ""
	if e.StartYear != nil {
		start = *e.StartYear
	}
	return ExperienceInfo{
		Company: e.Company.Name,
		Title:   e.Title,
		Period:  FormatPeriod(start, end),
	}
}

func MapSkill(item profile.SkillItem) SkillInfo {
	return SkillInfo{
		ID:           item.Skill.ID,
		Name:         item.Skill.Name,
		UsedAt:       item.UsedAt,
		Endorsements: FormatEndorsements(item.Endorsements),
	}
}

func FormatPeriod(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

// FormatEndorsements is empty for unendorsed skills.
func FormatEndorsements(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d endorsement", n)
}

func FormatConnections(n int) string {
	return fmt.Sprintf("%d connections", n)
}

func (c *Config) MapView(v profile.View) ViewDocument {
	doc := ViewDocument{
		View:     v.State.String(),
		Location: v.Location.String(),
		Loading:  v.Loading,
	}
	if len(v.Errors) > 0 {
		doc.Errors = v.Errors
	}
	switch {
	case v.Summary != nil:
		header := c.MapHeader(v.Summary.Header)
		doc.Header = &header
		for _, p := range v.Summary.Posts {
			doc.Posts = append(doc.Posts, c.MapPost(p))
		}
		doc.PostCount = v.Summary.PostCount
		for _, e := range v.Summary.Educations {
			doc.Educations = append(doc.Educations, MapEducation(e))
		}
		for _, e := range v.Summary.Experiences {
			doc.Experiences = append(doc.Experiences, MapExperience(e))
		}
		for _, s := range v.Summary.Skills {
			doc.Skills = append(doc.Skills, SkillInfo{ID: s.ID, Name: s.Name})
		}
		doc.SkillCount = v.Summary.SkillCount
		doc.IntroOpen = v.Summary.IntroOpen
	case v.AllPosts != nil:
		for _, p := range v.AllPosts.Posts {
			doc.Posts = append(doc.Posts, c.MapPost(p))
		}
		doc.PostCount = len(v.AllPosts.Posts)
		doc.CanGoBack = v.AllPosts.CanGoBack
	case v.AllSkills != nil:
		for _, item := range v.AllSkills.Skills {
			doc.Skills = append(doc.Skills, MapSkill(item))
		}
		doc.SkillCount = len(v.AllSkills.Skills)
		doc.Deleting = v.AllSkills.Deleting
		doc.AddSkillOpen = v.AllSkills.AddOpen
		doc.CanGoBack = v.AllSkills.CanGoBack
	}
	return doc
}
