// Package costclient provides a client for the remote cost estimation service.
package costclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/finopsmind/costmeter/internal/config"
	"github.com/finopsmind/costmeter/internal/correlation"
	"github.com/finopsmind/costmeter/internal/model"
)

// maxBodyBytes caps how much of a response is read, good or bad.
const maxBodyBytes = 1 << 20

// Forecaster is implemented by Client; handlers depend on it so tests can
// substitute the backend.
type Forecaster interface {
	Forecast(ctx context.Context, p *model.Payload) (*model.ForecastResult, error)
}

// Client provides access to the cost service. It issues exactly one request
// per call: no retries, no backoff.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new cost service client.
func NewClient(cfg config.CostServiceConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Forecast posts p to the cost service and decodes the forecast. A
// transport failure or any status other than 200 yields *BackendError; an
// unusable 200 body yields *MalformedResponseError.
func (c *Client) Forecast(ctx context.Context, p *model.Payload) (*model.ForecastResult, error) {
	logger := correlation.Logger(ctx, c.logger)

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("error calling cost service", "url", c.endpoint, "error", err)
		}
		return nil, &BackendError{Body: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error("error reading cost service response", "status", resp.StatusCode, "error", err)
		return nil, &BackendError{StatusCode: resp.StatusCode, Body: err.Error(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("error calling cost service", "status", resp.StatusCode, "body", string(respBody))
		return nil, &BackendError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result model.ForecastResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		logger.Error("malformed cost service response", "error", err, "body", string(respBody))
		return nil, &MalformedResponseError{Body: string(respBody), Err: err}
	}

	logger.Debug("forecast received",
		"total_cost", result.TotalCost.String(),
		"resources", result.AzureResourceCosts.Len(),
	)
	return &result, nil
}

func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := correlation.GetID(ctx); id != "" {
		req.Header.Set(correlation.HeaderName, id)
	}

	return c.httpClient.Do(req)
}
