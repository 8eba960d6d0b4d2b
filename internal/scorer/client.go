// Package scorer talks to the external sentiment service. The service is
// optional: without a configured URL every user scores neutral.
package scorer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"

	"xtrack/internal/core"
)

const neutralScore = 0.5

var apiLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "xtrack_scorer_request_latency",
		Help:    "Histogram of sentiment scorer request latency in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	},
	[]string{"method", "path", "status_code"},
)

type Client struct {
	Config *core.Config

	client *resty.Client
}

func (c *Client) Init(_ context.Context) error {
	if c.Config.SCORER_URL == "" {
		return nil
	}

	c.client = resty.New().
		SetBaseURL(c.Config.SCORER_URL).
		AddResponseMiddleware(metricMiddleware)

	return nil
}

func metricMiddleware(_ *resty.Client, response *resty.Response) error {
	reqURL, err := url.Parse(response.Request.URL)
	if err != nil {
		return err
	}

	apiLatency.WithLabelValues(
		response.Request.Method,
		reqURL.Path,
		fmt.Sprintf("%d", response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}

// SentimentScores returns a score in [0, 1] per user. Users the service does
// not know, and every user when no service is configured, score neutral.
func (c *Client) SentimentScores(ctx context.Context, users []string) (map[string]float64, error) {
	scores := make(map[string]float64, len(users))
	for _, user := range users {
		scores[user] = neutralScore
	}

	if c.client == nil || len(users) == 0 {
		return scores, nil
	}

	var body map[string]float64

	resp, err := c.client.R().
		WithContext(ctx).
		SetBody(map[string][]string{"users": users}).
		SetResult(&body).
		Post("/scores")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sentiment scorer returned %s", resp.Status())
	}

	for user, score := range body {
		if _, known := scores[user]; known {
			scores[user] = score
		}
	}

	return scores, nil
}

func (c *Client) Shutdown(_ context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
