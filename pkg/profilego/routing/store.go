package routing

import (
	"net/http"

	"github.com/beeper/profilehub/pkg/profilego/routing/response"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type PayloadDataInterface interface {
	Encode() ([]byte, error)
}

type ResponseDataInterface interface {
	Decode(data []byte) (any, error)
}

type RequestEndpointInfo struct {
	Method             string
	HeaderOpts         types.HeaderOpts
	ContentType        types.ContentType
	ResponseDefinition ResponseDataInterface
}

var readHeaders = types.HeaderOpts{
	WithCookies:   true,
	WithRequestID: true,
	Extra: map[string]string{
		"accept": string(types.JSON),
	},
}

var writeHeaders = types.HeaderOpts{
	WithCookies:   true,
	WithCsrfToken: true,
	WithRequestID: true,
	Extra: map[string]string{
		"accept": string(types.JSON),
	},
}

var RequestStoreDefinition = map[RequestEndpointURL]RequestEndpointInfo{
	LIST_POSTS_URL: {
		Method:             http.MethodGet,
		ContentType:        types.NONE,
		HeaderOpts:         readHeaders,
		ResponseDefinition: response.ListResponse[types.Post]{},
	},
	LIST_EDUCATIONS_URL: {
		Method:             http.MethodGet,
		ContentType:        types.NONE,
		HeaderOpts:         readHeaders,
		ResponseDefinition: response.ListResponse[types.Education]{},
	},
	LIST_EXPERIENCES_URL: {
		Method:             http.MethodGet,
		ContentType:        types.NONE,
		HeaderOpts:         readHeaders,
		ResponseDefinition: response.ListResponse[types.Experience]{},
	},
	LIST_SKILLS_URL: {
		Method:             http.MethodGet,
		ContentType:        types.NONE,
		HeaderOpts:         readHeaders,
		ResponseDefinition: response.ListResponse[types.Skill]{},
	},
	DELETE_SKILL_URL: {
		Method:             http.MethodDelete,
		ContentType:        types.NONE,
		HeaderOpts:         writeHeaders,
		ResponseDefinition: response.ActionResponse{},
	},
	UPDATE_PROFILE_URL: {
		Method:             http.MethodPut,
		ContentType:        types.JSON_PLAINTEXT_UTF8,
		HeaderOpts:         writeHeaders,
		ResponseDefinition: response.UserResponse{},
	},
	CURRENT_USER_URL: {
		Method:             http.MethodGet,
		ContentType:        types.NONE,
		HeaderOpts:         readHeaders,
		ResponseDefinition: response.UserResponse{},
	},
	LOGOUT_URL: {
		Method:      http.MethodGet,
		ContentType: types.NONE,
		HeaderOpts: types.HeaderOpts{
			WithCookies: true,
		},
	},
}
