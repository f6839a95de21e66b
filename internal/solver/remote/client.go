package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/mathsnap/internal/solver"
	"github.com/at-ishikawa/mathsnap/internal/upload"
	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"resty.dev/v3"
)

// RequestIDHeader carries an ID per submission so server logs can be matched with ours
const RequestIDHeader = "X-Request-ID"

var errNotJSONObject = errors.New("success response is not a JSON object")

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// NewClient creates a client for the solve server at baseURL.
// A zero timeout leaves the request unbounded; retryAttempts only applies to transport failures.
func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError only lets transport failures through.
// A server-reported failure already reached the server, so it is never resent.
func isRetryableError(err error) bool {
	var transportErr *solver.TransportError
	return errors.As(err, &transportErr)
}

// Solve implements the solver.Client interface
func (client *Client) Solve(ctx context.Context, image upload.SelectedImage) (solver.SolveResult, error) {
	var result solver.SolveResult
	// retries of one submission share the request ID
	requestID := uuid.NewString()
	attempt := 0
	if err := retry.Do(
		func() error {
			attempt++
			response, err := client.solve(ctx, requestID, image)
			if err != nil {
				if attempt > 1 || isRetryableError(err) {
					slog.Default().Debug("solve attempt failed",
						"requestID", requestID,
						"attempt", attempt,
						"image", image.Name,
						"error", err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return solver.SolveResult{}, err
	}
	return result, nil
}

func (client *Client) solve(ctx context.Context, requestID string, image upload.SelectedImage) (solver.SolveResult, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetMultipartField(solver.ImageField, image.Name, image.ContentType, bytes.NewReader(image.Data)).
		Post(solver.SolvePath)
	if err != nil {
		return solver.SolveResult{}, &solver.TransportError{Err: fmt.Errorf("httpClient.Post > %w", err)}
	}

	body := response.String()
	statusCode := response.StatusCode()
	slog.Default().Debug("solve response",
		"requestID", requestID,
		"image", image.Name,
		"status", statusCode,
		"body", body,
	)

	if statusCode < 200 || statusCode > 299 {
		var failure solver.SolveResult
		if err := json.Unmarshal([]byte(body), &failure); err != nil {
			slog.Default().Warn("failure response is not JSON",
				"status", statusCode,
				"error", err)
		}
		return solver.SolveResult{}, &solver.ServerError{
			StatusCode: statusCode,
			Message:    failure.Error,
		}
	}

	if !strings.HasPrefix(strings.TrimSpace(body), "{") {
		return solver.SolveResult{}, &solver.TransportError{Err: fmt.Errorf("%w: %q", errNotJSONObject, body)}
	}
	var result solver.SolveResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return solver.SolveResult{}, &solver.TransportError{Err: fmt.Errorf("json.Unmarshal(%s) > %w", body, err)}
	}
	return result, nil
}
