package query

import (
	"net/url"
)

// ProfileLocationQuery is the query string of a profile page location.
// A present edit flag deep-links into the edit-intro overlay.
type ProfileLocationQuery struct {
	Edit string `url:"edit,omitempty"`
}

func (q ProfileLocationQuery) Encode() ([]byte, error) {
	return encodeValues(q)
}

func ParseProfileLocationQuery(rawQuery string) (ProfileLocationQuery, bool, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ProfileLocationQuery{}, false, err
	}
	_, hasEdit := values["edit"]
	return ProfileLocationQuery{Edit: values.Get("edit")}, hasEdit, nil
}
