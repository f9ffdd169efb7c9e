package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

func TestListResponseDecode(t *testing.T) {
	raw := []byte(`{"success":true,"data":[{"_id":"e1","school":{"name":"A"},"endYear":2018},{"_id":"e2","school":{"name":"B"},"endYear":"2022"}]}`)

	decoded, err := ListResponse[types.Education]{}.Decode(raw)
	require.NoError(t, err)

	resp, ok := decoded.(*ListResponse[types.Education])
	require.True(t, ok)
	assert.True(t, resp.Success)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, types.Year("2018"), resp.Items[0].EndYear)
	assert.Equal(t, types.Year("2022"), resp.Items[1].EndYear)
}

func TestListResponseDecodeFailureKeepsItemsEmpty(t *testing.T) {
	raw := []byte(`{"success":false,"data":"boom","message":"profile not found"}`)

	decoded, err := ListResponse[types.Skill]{}.Decode(raw)
	require.NoError(t, err)

	resp := decoded.(*ListResponse[types.Skill])
	assert.False(t, resp.Success)
	assert.Equal(t, "profile not found", resp.Message)
	assert.Empty(t, resp.Items)
}

func TestUserResponseDecodeNullData(t *testing.T) {
	decoded, err := UserResponse{}.Decode([]byte(`{"success":true,"data":null}`))
	require.NoError(t, err)
	assert.Nil(t, decoded.(*UserResponse).User)
}
