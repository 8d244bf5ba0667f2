package httpclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"

	"searchalicious/internal/errors"
)

// GetJSON performs a GET request and decodes the JSON body into out.
// Failures are returned as errors.NotFound, errors.ServiceUnavailable or
// errors.Unexpected.
func (c *Client) GetJSON(ctx context.Context, baseURL, path string, query url.Values, out any) error {
	resp, err := c.Get(ctx, baseURL, path, query, nil)
	if err != nil {
		return Classify(err)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errors.NewUnexpected("failed to decode response", err)
	}
	return nil
}

// Classify maps a transport or status error to the error taxonomy
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		message := fmt.Sprintf("request failed with status %d", statusErr.StatusCode)
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound(message, err)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
			return errors.NewServiceUnavailable(message, err)
		default:
			return errors.NewUnexpected(message, err)
		}
	}

	return errors.NewServiceUnavailable("search service unreachable", err)
}
