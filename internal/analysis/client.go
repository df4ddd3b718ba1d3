package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/bestbet-labs/daily-bets/internal/apierr"
)

const serviceName = "analysis-api"

// Client issues one POST per resolved bet against a sport's analysis
// endpoint. A circuit breaker guards the endpoint so a misbehaving
// service stops receiving the remainder of a large batch; a rejected
// call surfaces as a TransportError for that single outcome.
type Client struct {
	httpClient *http.Client
	url        string
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

func NewClient(url string, threshold int, timeout time.Duration, logger *logrus.Logger) *Client {
	if threshold < 1 {
		threshold = 3
	}
	settings := gobreaker.Settings{
		Name:    serviceName,
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(threshold) && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:     url,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Analyze serializes the resolved bet, posts it, and decodes the scored
// analysis. Non-2xx responses map to TransportError, unparseable bodies
// to DecodeError; neither is retried.
func (c *Client) Analyze(ctx context.Context, req BetRequest) (*BetAnalysis, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &apierr.TransportError{Service: serviceName, Err: err}
		}
		return nil, err
	}
	return result.(*BetAnalysis), nil
}

func (c *Client) post(ctx context.Context, req BetRequest) (*BetAnalysis, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &apierr.DecodeError{Service: serviceName, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &apierr.TransportError{Service: serviceName, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apierr.TransportError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierr.TransportError{Service: serviceName, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apierr.TransportError{
			Service: serviceName,
			Status:  resp.StatusCode,
			Body:    snippet(body),
		}
	}

	var result BetAnalysis
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &apierr.DecodeError{Service: serviceName, Err: err}
	}

	return &result, nil
}

func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
