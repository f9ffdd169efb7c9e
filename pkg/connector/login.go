package connector

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/beeper/profilehub/pkg/profilego/cookies"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

var ValidCookieRegex = regexp.MustCompile(`\btoken=[^;]+`)

var ErrInvalidCookies = errors.New("cookie header does not contain a session token")

// SubmitCookies logs in with a raw Cookie header and resolves the session
// user. On failure the previous cookies are kept.
func (pc *ProfileConnector) SubmitCookies(ctx context.Context, cookieHeader string) (*types.User, error) {
	if !ValidCookieRegex.MatchString(cookieHeader) {
		return nil, ErrInvalidCookies
	}
	previous := pc.Client.GetCookieString()
	pc.Client.SetCookies(cookies.NewCookiesFromString(cookieHeader))

	user, err := pc.Client.LoadSession(ctx)
	if err != nil {
		pc.Client.SetCookies(cookies.NewCookiesFromString(previous))
		return nil, fmt.Errorf("failed to load session after submitting cookies: %w", err)
	}
	pc.Log.Info().
		Str("user_id", user.ID).
		Str("name", pc.Config.FormatDisplayname(user.FirstName, user.LastName)).
		Msg("Logged in")
	return user, nil
}
