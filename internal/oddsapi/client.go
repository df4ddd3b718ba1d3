package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/bestbet-labs/daily-bets/internal/apierr"
)

const serviceName = "odds-api"

// Client talks to the odds provider. Authentication is a query-string
// API key; requests are rate limited client-side to stay inside the
// provider's quota.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rate.Limiter
	logger      *logrus.Logger
}

func NewClient(baseURL, apiKey string, requestsPerSecond int, timeout time.Duration, logger *logrus.Logger) *Client {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:      logger,
	}
}

// ListEvents fetches the events for one sport commencing inside
// [from, to]. Every returned event is tagged with the sport key.
func (c *Client) ListEvents(ctx context.Context, sportKey string, from, to time.Time) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/events", c.baseURL, sportKey)
	params := url.Values{
		"apiKey":           {c.apiKey},
		"commenceTimeFrom": {from.UTC().Format(time.RFC3339)},
		"commenceTimeTo":   {to.UTC().Format(time.RFC3339)},
	}

	var events []Event
	if err := c.getJSON(ctx, endpoint, params, &events); err != nil {
		return nil, err
	}

	for i := range events {
		events[i].SportKey = sportKey
	}

	if len(events) == 0 {
		c.logger.WithField("sport_key", sportKey).Warn("No events found in this date range")
	} else {
		c.logger.WithFields(logrus.Fields{
			"sport_key": sportKey,
			"events":    len(events),
		}).Info("Fetched events")
	}

	return events, nil
}

// FetchGame fetches the bookmaker odds for a single event, restricted
// to the given market keys.
func (c *Client) FetchGame(ctx context.Context, sportKey, eventID, region string, markets []string) (*Game, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds", c.baseURL, sportKey, eventID)
	params := url.Values{
		"apiKey":     {c.apiKey},
		"regions":    {region},
		"markets":    {strings.Join(markets, ",")},
		"oddsFormat": {"decimal"},
	}

	var game Game
	if err := c.getJSON(ctx, endpoint, params, &game); err != nil {
		return nil, err
	}
	game.SportKey = sportKey

	return &game, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, dest interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return &apierr.TransportError{Service: serviceName, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &apierr.TransportError{Service: serviceName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierr.TransportError{Service: serviceName, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.TransportError{
			Service: serviceName,
			Status:  resp.StatusCode,
			Body:    snippet(body),
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return &apierr.DecodeError{Service: serviceName, Err: err}
	}

	return nil
}

func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
