package cohort

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aquademy/coachcore-backend/internal/pkg/httpx"
	"github.com/aquademy/coachcore-backend/internal/platform/envutil"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// ErrCohortNotFound marks a cohort_id the identity service does not know.
var ErrCohortNotFound = errors.New("cohort not found")

// Client confirms cohort identity and supplies cohort context for advisory
// prompts. The cohort aggregate itself lives outside this engine.
type Client interface {
	GetCohort(ctx context.Context, cohortID uuid.UUID) (*types.CohortContext, error)
	Exists(ctx context.Context, cohortID uuid.UUID) (bool, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

func New(baseLog *logger.Logger) (Client, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	log := baseLog.With("service", "CohortClient")

	baseURL := strings.TrimRight(strings.TrimSpace(envutil.GetEnv("COHORT_BASE_URL", "", log)), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing COHORT_BASE_URL")
	}

	timeoutSec := envutil.GetEnvAsInt("COHORT_TIMEOUT_SECONDS", 10, log)
	maxRetries := envutil.GetEnvAsInt("COHORT_MAX_RETRIES", 2, log)

	return &client{
		log:        log,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type cohortHTTPError struct {
	StatusCode int
	Body       string
}

func (e *cohortHTTPError) Error() string {
	return fmt.Sprintf("cohort http %d: %s", e.StatusCode, e.Body)
}

func (e *cohortHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) GetCohort(ctx context.Context, cohortID uuid.UUID) (*types.CohortContext, error) {
	var out types.CohortContext
	err := c.do(ctx, "GET", "/v1/cohorts/"+cohortID.String(), &out)
	if err != nil {
		var httpErr *cohortHTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrCohortNotFound, cohortID)
		}
		return nil, fmt.Errorf("get cohort: %w", err)
	}
	return &out, nil
}

func (c *client) Exists(ctx context.Context, cohortID uuid.UUID) (bool, error) {
	_, err := c.GetCohort(ctx, cohortID)
	if err != nil {
		if errors.Is(err, ErrCohortNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *client) do(ctx context.Context, method, path string, out any) error {
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, method, path)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("cohort decode error: %w", uErr)
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		c.log.Warn("Cohort request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, method, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &cohortHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
