package profile

import (
	"strconv"
	"strings"
	"time"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

// Layouts accepted for experience end dates, most specific first.
var endDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"January 2006",
	"Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

// educationYear is the numeric value of an education end year. Anything that
// is not a plain number counts as 0.
func educationYear(y types.Year) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return 0
	}
	return n
}

func parseEndDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MostRecentEducation returns the education with the highest numeric end year.
// Ties keep the earlier entry. If no entry has a positive year the last entry
// is returned, so a non-empty input always yields a result.
func MostRecentEducation(educations []types.Education) (types.Education, bool) {
	if len(educations) == 0 {
		return types.Education{}, false
	}

	best := -1
	bestYear := 0
	for i, edu := range educations {
		if year := educationYear(edu.EndYear); year > bestYear {
			best, bestYear = i, year
		}
	}
	if best < 0 {
		return educations[len(educations)-1], true
	}
	return educations[best], true
}

// MostRecentExperience returns the experience with the latest parseable end
// date. Current positions (no end date) and unparseable dates are never
// candidates.
func MostRecentExperience(experiences []types.Experience) (types.Experience, bool) {
	var (
		best     types.Experience
		bestDate time.Time
		found    bool
	)
	for _, exp := range experiences {
		if exp.EndYear == nil {
			continue
		}
		endDate, ok := parseEndDate(*exp.EndYear)
		if !ok {
			continue
		}
		if !found || endDate.After(bestDate) {
			best, bestDate, found = exp, endDate, true
		}
	}
	return best, found
}

// LatestSchoolName and LatestCompanyName are the header summary values.
func LatestSchoolName(educations []types.Education) string {
	edu, ok := MostRecentEducation(educations)
	if !ok {
		return ""
	}
	return edu.School.Name
}

func LatestCompanyName(experiences []types.Experience) string {
	exp, ok := MostRecentExperience(experiences)
	if !ok {
		return ""
	}
	return exp.Company.Name
}
