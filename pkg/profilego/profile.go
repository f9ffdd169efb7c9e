package profilego

import (
	"context"
	"fmt"

	"github.com/beeper/profilehub/pkg/profilego/routing"
	"github.com/beeper/profilehub/pkg/profilego/routing/payload"
	"github.com/beeper/profilehub/pkg/profilego/routing/response"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

func listRequest[T any](ctx context.Context, c *Client, endpoint routing.RequestEndpointURL, profileID string) ([]T, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, endpoint, []string{profileID}, nil, nil)
	if err != nil {
		return nil, err
	}

	listResponse, ok := respData.(*response.ListResponse[T])
	if !ok || listResponse == nil {
		return nil, newErrorResponseTypeAssertFailed(fmt.Sprintf("%T", &response.ListResponse[T]{}))
	}

	if listResponse.Items == nil {
		return []T{}, nil
	}
	return listResponse.Items, nil
}

func (c *Client) ListPosts(ctx context.Context, profileID string) ([]types.Post, error) {
	return listRequest[types.Post](ctx, c, routing.LIST_POSTS_URL, profileID)
}

func (c *Client) ListEducations(ctx context.Context, profileID string) ([]types.Education, error) {
	return listRequest[types.Education](ctx, c, routing.LIST_EDUCATIONS_URL, profileID)
}

func (c *Client) ListExperiences(ctx context.Context, profileID string) ([]types.Experience, error) {
	return listRequest[types.Experience](ctx, c, routing.LIST_EXPERIENCES_URL, profileID)
}

func (c *Client) ListSkills(ctx context.Context, profileID string) ([]types.Skill, error) {
	return listRequest[types.Skill](ctx, c, routing.LIST_SKILLS_URL, profileID)
}

func (c *Client) DeleteSkill(ctx context.Context, profileID, skillID string) error {
	resp, _, err := c.MakeRoutingRequest(ctx, routing.DELETE_SKILL_URL, []string{skillID}, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete skill %s of profile %s: %w", skillID, profileID, err)
	}

	c.Logger.Debug().
		Str("profile_id", profileID).
		Str("skill_id", skillID).
		Int("status_code", resp.StatusCode).
		Msg("Deleted skill")
	return nil
}

// UpdateIntro sends the edited intro fields and returns the user as stored by
// the server. A nil user with a nil error means the server did not echo it.
func (c *Client) UpdateIntro(ctx context.Context, edit types.IntroEdit) (*types.User, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.UPDATE_PROFILE_URL, nil, payload.NewUpdateIntroPayload(edit), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update intro: %w", err)
	}

	userResponse, ok := respData.(*response.UserResponse)
	if !ok || userResponse == nil {
		return nil, newErrorResponseTypeAssertFailed("*response.UserResponse")
	}

	if userResponse.User != nil {
		c.setCurrentUser(userResponse.User)
	}
	return userResponse.User, nil
}
