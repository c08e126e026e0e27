package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"startpage/internal/engines"
)

// Default provider settings.
const (
	DefaultProviderURL = "https://suggestqueries.google.com/complete/search?client=firefox&q="
	defaultTimeout     = 3 * time.Second
	defaultCacheSize   = 512
	defaultCacheTTL    = 5 * time.Minute
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second
	maxBodyBytes       = 64 * 1024
)

// ErrCircuitOpen is returned while the provider is being skipped after
// repeated failures.
var ErrCircuitOpen = errors.New("suggestion provider circuit open")

// ProviderConfig configures the upstream provider client
type ProviderConfig struct {
	// URL is the query prefix; the encoded query is appended to it.
	URL         string
	Timeout     time.Duration
	CacheSize   int
	CacheTTL    time.Duration
	MaxFailures uint32
	OpenTimeout time.Duration
}

// Provider talks to the third-party autocomplete endpoint. Responses have
// the shape [query, [candidate, ...], ...].
type Provider struct {
	url     string
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[[]string]
	cache   *expirable.LRU[string, []string]
	logger  *zap.Logger
}

// NewProvider creates a provider; zero config fields take defaults
func NewProvider(cfg ProviderConfig, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("provider")
	if cfg.URL == "" {
		cfg.URL = DefaultProviderURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("Accept", "application/json")

	maxFailures := cfg.MaxFailures
	breaker := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "suggest-provider",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// an abandoned keystroke is not the provider's fault
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Provider{
		url:     cfg.URL,
		client:  client,
		breaker: breaker,
		cache:   expirable.NewLRU[string, []string](cfg.CacheSize, nil, cfg.CacheTTL),
		logger:  logger,
	}
}

// Fetch implements Fetcher
func (p *Provider) Fetch(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}
	if cached, ok := p.cache.Get(query); ok {
		return Truncate(cached, len(cached)), nil
	}

	list, err := p.breaker.Execute(func() ([]string, error) {
		return p.fetch(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	p.cache.Add(query, list)
	return Truncate(list, len(list)), nil
}

func (p *Provider) fetch(ctx context.Context, query string) ([]string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		Get(p.url + engines.EncodeComponent(query))
	if err != nil {
		return nil, fmt.Errorf("request suggestions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("suggestion provider returned %s", resp.Status())
	}

	body := resp.Body()
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("suggestion response too large: %d bytes", len(body))
	}
	return ParseResponse(body)
}

// State exposes the breaker state for health reporting
func (p *Provider) State() gobreaker.State {
	return p.breaker.State()
}

// ParseResponse extracts the candidate list from a provider payload. Any
// valid JSON without a string list in second position yields an empty
// list; only invalid JSON is an error.
func ParseResponse(body []byte) ([]string, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("parse suggestions: invalid JSON payload")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) < 2 {
		return []string{}, nil
	}

	var candidates []string
	if err := json.Unmarshal(raw[1], &candidates); err != nil {
		return []string{}, nil
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
