package payload

import (
	"encoding/json"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

type UpdateIntroPayload struct {
	Bio        *string           `json:"bio,omitempty"`
	Location   *string           `json:"location,omitempty"`
	Education  *types.Education  `json:"education,omitempty"`
	Experience *types.Experience `json:"experience,omitempty"`
}

func NewUpdateIntroPayload(edit types.IntroEdit) UpdateIntroPayload {
	return UpdateIntroPayload{
		Bio:        edit.Bio,
		Location:   edit.Location,
		Education:  edit.Education,
		Experience: edit.Experience,
	}
}

func (p UpdateIntroPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}
