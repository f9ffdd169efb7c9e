package routing

// RequestEndpointURL is a path template relative to the configured API base URL.
// Path parameters are substituted with fmt verbs in declaration order.
type RequestEndpointURL string

const (
	API_V1 = "/api/v1"

	LIST_POSTS_URL       RequestEndpointURL = API_V1 + "/post/listAllPost/%s"
	LIST_EDUCATIONS_URL  RequestEndpointURL = API_V1 + "/profile/education/%s"
	LIST_EXPERIENCES_URL RequestEndpointURL = API_V1 + "/profile/experience/%s"
	LIST_SKILLS_URL      RequestEndpointURL = API_V1 + "/profile/skill/getAllSkill/%s"
	DELETE_SKILL_URL     RequestEndpointURL = API_V1 + "/profile/skill/deleteSkill/%s"
	UPDATE_PROFILE_URL   RequestEndpointURL = API_V1 + "/user/updateProfile"
	CURRENT_USER_URL     RequestEndpointURL = API_V1 + "/user/me"
	LOGOUT_URL           RequestEndpointURL = API_V1 + "/auth/logout"
)
