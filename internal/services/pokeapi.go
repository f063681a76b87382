package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/pokedex/pkg/pokemon"
	"golang.org/x/time/rate"
)

const (
	DefaultPokeAPIBaseURL = "https://pokeapi.co/api/v2"
	userAgent             = "pokedex-tui/1.0"
)

// PokeAPIClient implements Fetcher against pokeapi.co
type PokeAPIClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// Ensure PokeAPIClient implements Fetcher interface
var _ Fetcher = (*PokeAPIClient)(nil)

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []namedResource `json:"results"`
}

// pokemonResponse is the subset of /pokemon/{id} the viewer needs
type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Weight  int    `json:"weight"`
	Height  int    `json:"height"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

func (r *pokemonResponse) toPokemon() *pokemon.Pokemon {
	p := &pokemon.Pokemon{
		ID:        r.ID,
		Name:      r.Name,
		Weight:    r.Weight,
		Height:    r.Height,
		Types:     make([]string, 0, len(r.Types)),
		Abilities: make([]string, 0, len(r.Abilities)),
		Stats:     make([]pokemon.Stat, 0, len(r.Stats)),
	}
	if r.Sprites.FrontDefault != nil {
		p.Sprite = *r.Sprites.FrontDefault
	}
	for _, t := range r.Types {
		p.Types = append(p.Types, t.Type.Name)
	}
	for _, a := range r.Abilities {
		p.Abilities = append(p.Abilities, a.Ability.Name)
	}
	for _, s := range r.Stats {
		p.Stats = append(p.Stats, pokemon.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return p
}

// NewPokeAPIClient creates a rate-limited client. rps <= 0 disables limiting.
func NewPokeAPIClient(baseURL string, timeout time.Duration, rps float64, logger *slog.Logger) *PokeAPIClient {
	if baseURL == "" {
		baseURL = DefaultPokeAPIBaseURL
	}

	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}

	return &PokeAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger,
	}
}

func (c *PokeAPIClient) FetchTypes(ctx context.Context) ([]pokemon.Type, error) {
	var list listResponse
	if err := c.getJSON(ctx, c.baseURL+"/type", &list); err != nil {
		return nil, fmt.Errorf("failed to fetch types: %w", err)
	}

	types := make([]pokemon.Type, 0, len(list.Results))
	for _, r := range list.Results {
		types = append(types, pokemon.Type{Name: r.Name})
	}
	return types, nil
}

func (c *PokeAPIClient) FetchPage(ctx context.Context, limit, offset int) ([]pokemon.Stub, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var list listResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon?"+q.Encode(), &list); err != nil {
		return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
	}

	stubs := make([]pokemon.Stub, 0, len(list.Results))
	for _, r := range list.Results {
		stubs = append(stubs, pokemon.Stub{Name: r.Name, URL: r.URL})
	}
	return stubs, nil
}

func (c *PokeAPIClient) FetchPokemon(ctx context.Context, detailURL string) (*pokemon.Pokemon, error) {
	var resp pokemonResponse
	if err := c.getJSON(ctx, detailURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon: %w", err)
	}
	if resp.ID <= 0 || resp.Name == "" {
		return nil, &ParseError{URL: detailURL, Err: errors.New("record has no id or name")}
	}
	return resp.toPokemon(), nil
}

// getJSON performs a rate-limited GET and decodes the body into out.
func (c *PokeAPIClient) getJSON(ctx context.Context, target string, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return &NetworkError{URL: target, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &NetworkError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("PokeAPI request failed", "url", target, "error", err)
		return &NetworkError{URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("PokeAPI returned non-2xx", "url", target, "status", resp.StatusCode)
		return &NetworkError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{URL: target, Err: err}
	}

	c.logger.Debug("PokeAPI request complete", "url", target, "bytes", len(body), "duration", time.Since(start))
	return nil
}
