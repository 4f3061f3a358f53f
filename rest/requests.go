// Package rest holds the JSON over HTTP plumbing shared by the price and asset list clients.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResponseError is returned for any response that is not a 200.
type ResponseError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("error getting response for endpoint %s: Status %s Body %s", e.Endpoint, e.Status, e.Body)
}

// GetJSON makes a GET request to requestURL and decodes the JSON body into result.
// A nil client uses http.DefaultClient.
func GetJSON(ctx context.Context, client *http.Client, requestURL string, result any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = checkResponseErrorCode(requestURL, resp)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, result)
	if err != nil {
		return fmt.Errorf("decoding response of %s: %w", requestURL, err)
	}

	return nil
}

func checkResponseErrorCode(requestEndpoint string, resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &ResponseError{
			Endpoint:   requestEndpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	return nil
}
