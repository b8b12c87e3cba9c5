package evaluation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	resty "github.com/go-resty/resty/v2"
)

const (
	RequestTimeout   = 20 * time.Second
	RetryCount       = 2
	RetryWaitTime    = 200 * time.Millisecond
	RetryWaitTimeMax = 2 * time.Second
	maxErrorBody     = 512
)

// ScorecardClient posts artifacts to a scorecard service
type ScorecardClient struct {
	http *resty.Client
}

type evaluationResponse struct {
	URL string `json:"url"`
}

// NewScorecardClient creates a client for the service at baseURL. apiKey is
// sent as a bearer token when set.
func NewScorecardClient(baseURL, apiKey string) *ScorecardClient {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("User-Agent", "launch-orchestrator")
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	c.SetTimeout(RequestTimeout)
	c.SetRetryCount(RetryCount)
	c.SetRetryWaitTime(RetryWaitTime)
	c.SetRetryMaxWaitTime(RetryWaitTimeMax)
	c.AddRetryCondition(func(response *resty.Response, err error) bool {
		if err != nil {
			return false
		}
		switch response.StatusCode() {
		case
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	})
	return &ScorecardClient{http: c}
}

// Evaluate submits the artifact and returns the evaluation URL from the response.
func (c *ScorecardClient) Evaluate(ctx context.Context, req Request) (string, error) {
	var out evaluationResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/evaluations")
	if err != nil {
		return "", fmt.Errorf("failed to submit evaluation: %w", err)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return "", &ServiceError{StatusCode: resp.StatusCode(), Body: body}
	}
	if out.URL == "" {
		return "", errors.New("evaluation response has no url")
	}
	return out.URL, nil
}
