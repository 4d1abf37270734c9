package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aquademy/coachcore-backend/internal/pkg/httpx"
	"github.com/aquademy/coachcore-backend/internal/platform/envutil"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/types"
)

// Client reads the coach/member roster service. Each read is point-in-time;
// the engine never owns or mutates roster data.
type Client interface {
	ListCoaches(ctx context.Context) ([]types.RosterCoach, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	maxRetries int

	rdb      *goredis.Client
	cacheTTL time.Duration
}

// New builds the roster client from ROSTER_BASE_URL. When REDIS_ADDR is set a
// short-TTL snapshot cache smooths repeated eligibility reads; cache failures
// degrade to a direct fetch.
func New(baseLog *logger.Logger) (Client, error) {
	if baseLog == nil {
		return nil, fmt.Errorf("logger required")
	}
	log := baseLog.With("service", "RosterClient")

	baseURL := strings.TrimRight(strings.TrimSpace(envutil.GetEnv("ROSTER_BASE_URL", "", log)), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing ROSTER_BASE_URL")
	}

	timeoutSec := envutil.GetEnvAsInt("ROSTER_TIMEOUT_SECONDS", 10, log)
	maxRetries := envutil.GetEnvAsInt("ROSTER_MAX_RETRIES", 2, log)

	var rdb *goredis.Client
	cacheTTL := time.Duration(envutil.GetEnvAsInt("ROSTER_CACHE_TTL_SECONDS", 15, log)) * time.Second
	if addr := strings.TrimSpace(envutil.GetEnv("REDIS_ADDR", "", log)); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			_ = rdb.Close()
			log.Warn("Redis unavailable, roster cache disabled", "error", err)
			rdb = nil
		} else {
			cancel()
		}
	}

	return &client{
		log:        log,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
	}, nil
}

const cacheKey = "roster:coaches:snapshot"

type rosterHTTPError struct {
	StatusCode int
	Body       string
}

func (e *rosterHTTPError) Error() string {
	return fmt.Sprintf("roster http %d: %s", e.StatusCode, e.Body)
}

func (e *rosterHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type listCoachesResponse struct {
	Coaches []types.RosterCoach `json:"coaches"`
}

func (c *client) ListCoaches(ctx context.Context) ([]types.RosterCoach, error) {
	if cached, ok := c.fromCache(ctx); ok {
		return cached, nil
	}

	var resp listCoachesResponse
	if err := c.do(ctx, "GET", "/v1/coaches", &resp); err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	if resp.Coaches == nil {
		resp.Coaches = []types.RosterCoach{}
	}

	c.toCache(ctx, resp.Coaches)
	return resp.Coaches, nil
}

func (c *client) fromCache(ctx context.Context) ([]types.RosterCoach, bool) {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Roster cache read failed", "error", err)
		}
		return nil, false
	}
	var coaches []types.RosterCoach
	if err := json.Unmarshal(raw, &coaches); err != nil {
		c.log.Warn("Roster cache entry malformed, ignoring", "error", err)
		return nil, false
	}
	return coaches, true
}

func (c *client) toCache(ctx context.Context, coaches []types.RosterCoach) {
	if c.rdb == nil || c.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(coaches)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
		c.log.Debug("Roster cache write failed", "error", err)
	}
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
				return fmt.Errorf("roster decode error: %w", uErr)
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		c.log.Warn("Roster request retrying",
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
		return resp, raw, &rosterHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
