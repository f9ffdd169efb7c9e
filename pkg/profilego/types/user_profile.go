package types

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

type OrgRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Year is a year value as sent by the API. The backend is not consistent
// about quoting it, so numbers and strings are both accepted and kept as text.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*y = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	*y = Year(raw)
	return nil
}

type Education struct {
	ID        string `json:"_id,omitempty"`
	School    OrgRef `json:"school"`
	Degree    string `json:"degree,omitempty"`
	StartYear Year   `json:"startYear,omitempty"`
	EndYear   Year   `json:"endYear,omitempty"`
}

// Experience.EndYear is a date string; nil means the position is current.
type Experience struct {
	ID        string  `json:"_id,omitempty"`
	Company   OrgRef  `json:"company"`
	Title     string  `json:"title,omitempty"`
	StartYear *string `json:"startYear,omitempty"`
	EndYear   *string `json:"endYear,omitempty"`
}

type PostAuthor struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

type Post struct {
	ID        string     `json:"_id"`
	Author    PostAuthor `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Skill struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	References []OrgRef `json:"references,omitempty"`
	EndorsedBy []string `json:"endorsedBy,omitempty"`
}

type User struct {
	ID              string       `json:"_id"`
	FirstName       string       `json:"firstName"`
	LastName        string       `json:"lastName"`
	Bio             string       `json:"bio,omitempty"`
	About           string       `json:"about,omitempty"`
	Location        string       `json:"location,omitempty"`
	Avatar          string       `json:"avatar,omitempty"`
	BackgroundImage string       `json:"backgroundImage,omitempty"`
	Educations      []Education  `json:"educations"`
	Experiences     []Experience `json:"experiences"`
	Followers       []string     `json:"followers"`
	Following       []string     `json:"following"`
	Views           int          `json:"views"`
}

// Clone returns a copy of the user that shares no slices with the original.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Educations = slices.Clone(u.Educations)
	c.Experiences = make([]Experience, len(u.Experiences))
	for i, exp := range u.Experiences {
		c.Experiences[i] = exp.clone()
	}
	if u.Experiences == nil {
		c.Experiences = nil
	}
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c
}

func (e Experience) clone() Experience {
	if e.StartYear != nil {
		v := *e.StartYear
		e.StartYear = &v
	}
	if e.EndYear != nil {
		v := *e.EndYear
		e.EndYear = &v
	}
	return e
}

// IntroEdit holds the fields of the edit-intro form. Nil fields are left untouched.
type IntroEdit struct {
	Bio        *string
	Location   *string
	Education  *Education
	Experience *Experience
}
