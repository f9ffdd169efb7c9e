package profilego

import (
	"net/http"

	"github.com/beeper/profilehub/pkg/profilego/cookies"
	"github.com/beeper/profilehub/pkg/profilego/methods"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

const UserAgent = "profilehub/0.1 (+https://github.com/beeper/profilehub)"

var defaultConstantHeaders = http.Header{
	"accept":          []string{string(types.JSON)},
	"accept-language": []string{"en-US,en;q=0.9"},
	"user-agent":      []string{UserAgent},
}

func (c *Client) buildHeaders(opts types.HeaderOpts) http.Header {
	extra := make(map[string]string, len(opts.Extra)+4)
	for k, v := range opts.Extra {
		extra[k] = v
	}

	headers := defaultConstantHeaders.Clone()
	if opts.WithCookies {
		if cookieStr := c.cookies.String(); cookieStr != "" {
			extra["cookie"] = cookieStr
		}
	}

	if opts.WithCsrfToken {
		if token := c.cookies.Get(cookies.CsrfToken); token != "" {
			extra["x-xsrf-token"] = token
		}
	}

	if opts.WithRequestID {
		extra["x-request-id"] = methods.GenerateRequestID()
	}

	if opts.Origin != "" {
		extra["origin"] = opts.Origin
	}

	if opts.Referer != "" {
		extra["referer"] = opts.Referer
	}

	for k, v := range extra {
		headers.Set(k, v)
	}

	return headers
}
