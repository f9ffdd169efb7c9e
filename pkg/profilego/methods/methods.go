package methods

import (
	"net/url"

	"go.mau.fi/util/random"
)

func GenerateRequestID() string {
	return random.String(16)
}

// ExpandPathParams escapes every parameter so it can be substituted into a
// single path segment of an endpoint template.
func ExpandPathParams(params []string) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = url.PathEscape(p)
	}
	return out
}
