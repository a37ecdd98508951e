package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/cabinet_desk/internal/auth"
	"github.com/Freeeeeet/cabinet_desk/internal/metrics"
	"github.com/Freeeeeet/cabinet_desk/internal/model"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRetries   = 2
	defaultRetryBase = 200 * time.Millisecond
	maxErrorBody     = 300
	maxResponseBody  = 4 << 20
)

// Options общие настройки клиентов REST-сервисов
type Options struct {
	Timeout    time.Duration
	Limiter    *rate.Limiter // общий для всех клиентов, nil - без ограничения
	Metrics    *metrics.Metrics
	Retries    int // 0 значит defaultRetries, отрицательное отключает повторы
	RetryBase  time.Duration
	HTTPClient *http.Client
}

type restClient struct {
	service    string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	retries    uint64
	retryBase  time.Duration
	logger     *zap.Logger
}

func newRestClient(service, baseURL string, opts Options, logger *zap.Logger) *restClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var retries uint64
	switch {
	case opts.Retries == 0:
		retries = defaultRetries
	case opts.Retries > 0:
		retries = uint64(opts.Retries)
	}
	retryBase := opts.RetryBase
	if retryBase <= 0 {
		retryBase = defaultRetryBase
	}
	return &restClient{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    opts.Limiter,
		metrics:    opts.Metrics,
		retries:    retries,
		retryBase:  retryBase,
		logger:     logger.With(zap.String("service", service)),
	}
}

// get - чтение, повторяется при недоступности сервиса
func (c *restClient) get(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doJSON(ctx, http.MethodGet, path, nil, out)
		if errors.Is(err, model.ErrStoreUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// Изменяющие запросы не повторяются
func (c *restClient) send(ctx context.Context, method, path string, body, out any) error {
	return c.doJSON(ctx, method, path, body, out)
}

func (c *restClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveStoreRequest(c.service, method, "error")
		c.logger.Warn("Store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %v", model.ErrStoreUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveStoreRequest(c.service, method, strconv.Itoa(resp.StatusCode))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", model.ErrStoreUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		c.logger.Warn("Store returned non-2xx",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
			zap.String("body", msg),
		)
		return statusError(resp.StatusCode, msg)
	}

	if len(bytes.TrimSpace(respBody)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError переводит HTTP-код в доменную ошибку
func statusError(code int, msg string) error {
	var kind error
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = model.ErrUnauthorized
	case code == http.StatusNotFound:
		kind = model.ErrNotFound
	case code == http.StatusConflict:
		kind = model.ErrSlotTaken
	case code == http.StatusTooManyRequests || code >= 500:
		kind = model.ErrStoreUnavailable
	default:
		kind = model.ErrInvalidInput
	}
	return fmt.Errorf("%w: status %d: %s", kind, code, msg)
}
