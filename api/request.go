package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// envelope is the response shape shared by every clipboard endpoint.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

// doRequest sends an authenticated request and decodes the envelope. The
// envelope code, not the HTTP status, decides success: anything other than
// wantCode becomes a *RequestError.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, wantCode int, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.creds.basicAuth())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &HTTPError{
				StatusCode: resp.StatusCode,
				Message:    string(bodyBytes),
			}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("clipboard request", "method", method, "path", path, "status", resp.StatusCode, "code", env.Code)

	if env.Code != wantCode {
		return &RequestError{Code: env.Code, Message: env.Message}
	}

	if result != nil {
		if len(env.Payload) == 0 || string(env.Payload) == "null" {
			return errors.New("failed to decode response: missing payload")
		}
		if err := json.Unmarshal(env.Payload, result); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}

	return nil
}
