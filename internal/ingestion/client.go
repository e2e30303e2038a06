package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"skillpulse/internal/cache"
	"skillpulse/internal/cache/redis"
	"skillpulse/internal/config"
	"skillpulse/internal/errors"
	"skillpulse/internal/models"
	"skillpulse/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("skillpulse/ingestion")

// JobBoardClient searches the job board for postings matching one
// (city, role) pair. Search results are cached so a polling cycle that
// retries does not hammer the upstream API.
type JobBoardClient interface {
	SearchPostings(ctx context.Context, city, role string) (models.RawPostings, error)
}

type jobBoardClient struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
	cache  cache.Cache
}

func NewJobBoardClient(logger *zap.Logger, config *config.Config) JobBoardClient {
	cacheOpts := cache.Options{
		RedisURL:      config.RedisAddr,
		RedisPassword: config.RedisPassword,
		RedisDB:       config.RedisDB,
		DefaultTTL:    config.CacheTTL,
	}

	return &jobBoardClient{
		client: &http.Client{
			Timeout: config.JobBoardTimeout,
		},
		logger: logger,
		config: config,
		cache:  redis.New(cacheOpts),
	}
}

func (c *jobBoardClient) SearchPostings(ctx context.Context, city, role string) (models.RawPostings, error) {
	ctx, span := tracer.Start(ctx, "SearchPostings")
	defer span.End()
	span.SetAttributes(
		telemetry.String("search.city", city),
		telemetry.String("search.role", role),
	)

	cacheKey := fmt.Sprintf("jobboard:search:%s:%s", city, role)

	var cached models.RawPostings
	err := c.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		c.logger.Debug("cache hit for posting search",
			zap.String("city", city),
			zap.String("role", role))
		return cached, nil
	} else if err != cache.ErrNotFound {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		c.logger.Warn("cache error for posting search", zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	searchURL := fmt.Sprintf("%s/search?query=%s&location=%s&limit=%d",
		c.config.JobBoardBaseURL,
		url.QueryEscape(role),
		url.QueryEscape(city),
		c.config.ResultsWanted)
	c.logger.Debug("cache miss, searching postings", zap.String("url", searchURL))
	span.SetAttributes(telemetry.String("http.url", searchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("failed to execute request", zap.Error(err))
		return nil, errors.Unavailable("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(
		telemetry.Int("http.status_code", resp.StatusCode),
		telemetry.String("http.method", http.MethodGet),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code", zap.Int("status_code", resp.StatusCode))
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var searchResult struct {
		Jobs  []models.RawPosting `json:"jobs"`
		Total int                 `json:"total"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&searchResult); err != nil {
		c.logger.Error("failed to decode response", zap.Error(err))
		return nil, errors.Internal("decoding response", err)
	}

	postings := make(models.RawPostings, 0, len(searchResult.Jobs))
	for _, job := range searchResult.Jobs {
		job.SearchedCity = city
		job.SearchedRole = role
		postings = append(postings, job)
	}

	c.logger.Debug("successfully fetched postings",
		zap.String("city", city),
		zap.String("role", role),
		zap.Int("count", len(postings)))

	if err := c.cache.Set(ctx, cacheKey, postings, c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache posting search results", zap.Error(err))
	}

	return postings, nil
}
