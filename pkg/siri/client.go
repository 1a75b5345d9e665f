// Package siri queries a SIRI StopMonitoring endpoint for the upcoming
// departures at one or more stops.
package siri

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/sourcegraph/conc/iter"
	"github.com/travigo/departures/pkg/config"
	"github.com/travigo/departures/pkg/ctdf"
	"github.com/travigo/departures/pkg/util"
	"golang.org/x/exp/slices"
)

var retryOnStatus = []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}

const errorBodyLength = 300

type StopDepartures struct {
	StopRef    string
	Departures []*ctdf.DepartureBoard
	Err        error
}

type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("SIRI endpoint returned %s: %s", e.Status, e.Body)
}

type Client struct {
	endpoint     string
	datasetID    string
	requestorRef string

	previewInterval string
	preview         iso8601.Duration
	hasPreview      bool

	maxRetries int
	httpClient *http.Client

	now          func() time.Time
	newMessageID func() string
	newBackOff   func() backoff.BackOff
}

// NewClient uses httpClient when given, otherwise a client with the
// configured timeout.
func NewClient(cfg config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	preview, hasPreview := cfg.Preview()

	return &Client{
		endpoint:        cfg.Endpoint,
		datasetID:       cfg.DatasetID,
		requestorRef:    cfg.RequestorRef,
		previewInterval: cfg.PreviewInterval,
		preview:         preview,
		hasPreview:      hasPreview,
		maxRetries:      cfg.MaxRetries,
		httpClient:      httpClient,

		now:          time.Now,
		newMessageID: func() string { return uuid.New().String() },
		newBackOff:   func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
}

// Departures queries every stop concurrently. Results keep the order of
// stopRefs and each carries its own error.
func (c *Client) Departures(ctx context.Context, stopRefs []string, limit int) []StopDepartures {
	return iter.Map(stopRefs, func(stopRef *string) StopDepartures {
		departures, err := c.StopDepartures(ctx, *stopRef, limit)
		if err != nil {
			log.Error().Err(err).Str("stop", *stopRef).Msg("Failed to get departures")
		}

		return StopDepartures{
			StopRef:    *stopRef,
			Departures: departures,
			Err:        err,
		}
	})
}

// StopDepartures returns at most limit departures for a single stop, in the
// order the endpoint returned them.
func (c *Client) StopDepartures(ctx context.Context, stopRef string, limit int) ([]*ctdf.DepartureBoard, error) {
	now := c.now()

	request := NewStopMonitoringRequest(stopRef, RequestOptions{
		RequestorRef:      c.requestorRef,
		MessageIdentifier: c.newMessageID(),
		PreviewInterval:   c.previewInterval,
		MaximumStopVisits: limit,
		Timestamp:         now,
	})

	requestBody, err := request.Marshal()
	if err != nil {
		return nil, err
	}

	log.Debug().Str("stop", stopRef).Str("request", string(requestBody)).Msg("Sending SIRI request")

	responseBody, err := c.post(ctx, requestBody)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("stop", stopRef).Str("response", string(responseBody)).Msg("Received SIRI response")

	response, err := ParseResponse(bytes.NewReader(responseBody))
	if err != nil {
		return nil, err
	}

	if event := log.Debug(); event.Enabled() {
		event.Msg(pretty.Sprint(response))
	}

	departures, err := response.ToCTDF()
	if err != nil {
		return nil, err
	}

	if c.hasPreview {
		horizon := c.preview.Shift(now)
		util.InPlaceFilter(&departures, func(departure *ctdf.DepartureBoard) bool {
			departureTime := departure.Time()
			return departureTime.IsZero() || !departureTime.After(horizon)
		})
	}

	if limit > 0 && len(departures) > limit {
		departures = departures[:limit]
	}

	return departures, nil
}

func (c *Client) post(ctx context.Context, requestBody []byte) ([]byte, error) {
	maxRetries := c.maxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(maxRetries)), ctx)

	return backoff.RetryNotifyWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(requestBody))
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("building SIRI request: %w", err))
		}
		req.Header.Set("Content-Type", "application/xml")
		req.Header["datasetId"] = []string{c.datasetID}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("requesting %s: %w", c.endpoint, err))
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("reading SIRI response: %w", err))
		}

		log.Debug().Int("status", resp.StatusCode).Msg("SIRI endpoint responded")

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       util.TrimString(string(body), errorBodyLength),
			}

			if slices.Contains(retryOnStatus, resp.StatusCode) {
				return nil, statusErr
			}

			return nil, backoff.Permanent(statusErr)
		}

		return body, nil
	}, policy, func(err error, wait time.Duration) {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			log.Warn().Int("status", statusErr.StatusCode).Dur("wait", wait).Msg("Retrying SIRI request")
		}
	})
}
