package profilego

import (
	"context"
	"fmt"

	"github.com/beeper/profilehub/pkg/profilego/event"
	"github.com/beeper/profilehub/pkg/profilego/routing"
	"github.com/beeper/profilehub/pkg/profilego/routing/response"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

// LoadSession resolves the user behind the session cookies.
func (c *Client) LoadSession(ctx context.Context) (*types.User, error) {
	if !c.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	user, err := c.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("failed to find current user in session response")
	}

	c.setCurrentUser(user)
	c.dispatch(event.SessionChanged{User: user.Clone()})
	return user, nil
}

func (c *Client) GetCurrentUser(ctx context.Context) (*types.User, error) {
	_, respData, err := c.MakeRoutingRequest(ctx, routing.CURRENT_USER_URL, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	userResponse, ok := respData.(*response.UserResponse)
	if !ok || userResponse == nil {
		return nil, newErrorResponseTypeAssertFailed("*response.UserResponse")
	}
	return userResponse.User, nil
}

func (c *Client) GetCurrentUserID() string {
	c.userLock.RLock()
	defer c.userLock.RUnlock()
	if c.currentUser == nil {
		return ""
	}
	return c.currentUser.ID
}

func (c *Client) setCurrentUser(user *types.User) {
	c.userLock.Lock()
	defer c.userLock.Unlock()
	c.currentUser = user.Clone()
}
