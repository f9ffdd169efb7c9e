package response

import (
	"bytes"
	"encoding/json"

	"github.com/beeper/profilehub/pkg/profilego/types"
)

// Envelope is the {success, data, message} wrapper every API response uses.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (e *Envelope) GetEnvelope() *Envelope {
	return e
}

func (e *Envelope) hasData() bool {
	return e.Success && len(e.Data) > 0 && !bytes.Equal(e.Data, []byte("null"))
}

type ListResponse[T any] struct {
	Envelope
	Items []T `json:"-"`
}

func (r ListResponse[T]) Decode(data []byte) (any, error) {
	respData := &ListResponse[T]{}
	if err := json.Unmarshal(data, &respData.Envelope); err != nil {
		return nil, err
	}
	if respData.hasData() {
		if err := json.Unmarshal(respData.Data, &respData.Items); err != nil {
			return nil, err
		}
	}
	return respData, nil
}

type UserResponse struct {
	Envelope
	User *types.User `json:"-"`
}

func (r UserResponse) Decode(data []byte) (any, error) {
	respData := &UserResponse{}
	if err := json.Unmarshal(data, &respData.Envelope); err != nil {
		return nil, err
	}
	if respData.hasData() {
		respData.User = &types.User{}
		if err := json.Unmarshal(respData.Data, respData.User); err != nil {
			return nil, err
		}
	}
	return respData, nil
}

// ActionResponse is used by endpoints whose data payload is ignored.
type ActionResponse struct {
	Envelope
}

func (r ActionResponse) Decode(data []byte) (any, error) {
	respData := &ActionResponse{}
	return respData, json.Unmarshal(data, &respData.Envelope)
}
