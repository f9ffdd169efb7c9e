package profilego

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/beeper/profilehub/pkg/profilego/methods"
	"github.com/beeper/profilehub/pkg/profilego/routing"
	"github.com/beeper/profilehub/pkg/profilego/routing/response"
	"github.com/beeper/profilehub/pkg/profilego/types"
)

type enveloped interface {
	GetEnvelope() *response.Envelope
}

func (c *Client) MakeRequest(ctx context.Context, url string, method string, headers http.Header, payload []byte, contentType types.ContentType) (*http.Response, []byte, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}

	if contentType != types.NONE {
		headers.Set("content-type", string(contentType))
	}
	req.Header = headers

	c.Logger.Debug().Str("method", method).Str("url", url).Msg("Sending request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	c.cookies.UpdateFromResponse(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	c.Logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(respBody)).
		Msg("Received response")

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return resp, respBody, fmt.Errorf("%w: %s %s (statusCode=%d)", ErrUnauthorized, method, url, resp.StatusCode)
	}

	return resp, respBody, nil
}

// MakeRoutingRequest sends a request described by RequestStoreDefinition.
// The decoded response is returned only when the API reports success.
func (c *Client) MakeRoutingRequest(ctx context.Context, endpointURL routing.RequestEndpointURL, pathParams []string, payload routing.PayloadDataInterface, query routing.PayloadDataInterface) (*http.Response, any, error) {
	routingDefinition, ok := routing.RequestStoreDefinition[endpointURL]
	if !ok {
		return nil, nil, fmt.Errorf("no routing definition for endpoint %s", endpointURL)
	}

	url := c.baseURL + fmt.Sprintf(string(endpointURL), methods.ExpandPathParams(pathParams)...)
	if query != nil {
		encodedQuery, err := query.Encode()
		if err != nil {
			return nil, nil, err
		}
		if len(encodedQuery) > 0 {
			url += "?" + string(encodedQuery)
		}
	}

	var payloadBytes []byte
	if payload != nil {
		var err error
		payloadBytes, err = payload.Encode()
		if err != nil {
			return nil, nil, err
		}
	}

	headers := c.buildHeaders(routingDefinition.HeaderOpts)
	resp, respBody, err := c.MakeRequest(ctx, url, routingDefinition.Method, headers, payloadBytes, routingDefinition.ContentType)
	if err != nil {
		return resp, nil, err
	}

	if routingDefinition.ResponseDefinition == nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return resp, nil, &APIError{StatusCode: resp.StatusCode}
		}
		return resp, nil, nil
	}

	respData, err := routingDefinition.ResponseDefinition.Decode(respBody)
	if err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return resp, nil, &APIError{StatusCode: resp.StatusCode}
		}
		return resp, nil, fmt.Errorf("failed to decode response from %s: %w", endpointURL, err)
	}

	if env, ok := respData.(enveloped); ok && !env.GetEnvelope().Success {
		return resp, nil, &APIError{StatusCode: resp.StatusCode, Message: env.GetEnvelope().Message}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, nil, &APIError{StatusCode: resp.StatusCode}
	}

	return resp, respData, nil
}
