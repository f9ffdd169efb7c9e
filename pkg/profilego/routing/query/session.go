package query

import (
	"github.com/google/go-querystring/query"
)

// LogoutQuery is sent with the logout request so the backend can check it
// against the CSRF cookie.
type LogoutQuery struct {
	CsrfToken string `url:"csrfToken"`
}

func (p *LogoutQuery) Encode() ([]byte, error) {
	return encodeValues(p)
}

func encodeValues(v any) ([]byte, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, err
	}
	return []byte(values.Encode()), nil
}
