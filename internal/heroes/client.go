// Package heroes is the data-access layer for the heroes collection.
//
// Every operation logs its outcome to the message log. Transport failures are
// never returned to the caller: they are reported, logged, and replaced by a
// safe default so the views always have something to render.
package heroes

import (
	"bytes"
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

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/metrics"
)

// CollectionPath is the REST collection the client talks to.
const CollectionPath = "/apis/heroes"

const (
	messagePrefix  = "HeroService: "
	defaultTimeout = 10 * time.Second
)

// Operation names, used in failure messages and as metric labels.
const (
	opList     = "getHeroes"
	opGet      = "getHero"
	opGetNo404 = "getHeroNo404"
	opSearch   = "searchHeroes"
	opAdd      = "addHero"
	opUpdate   = "updateHero"
	opDelete   = "deleteHero"
)

// MessageLog receives one human readable line per operation.
type MessageLog interface {
	Add(message string)
}

// Recorder observes request outcomes.
type Recorder interface {
	ObserveRequest(operation, outcome string, d time.Duration)
}

// HTTPError is returned by the transport layer for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http failure response for %s %s: %s", e.Method, e.URL, e.Status)
}

// Client wraps the heroes REST endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	messages   MessageLog
	recorder   Recorder
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client, e.g. to route requests
// through an in-process transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, messages MessageLog, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		messages:   messages,
		logger:     slog.Default().With("component", "heroes.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every hero. On failure it returns an empty slice.
func (c *Client) List(ctx context.Context) []domain.Hero {
	var heroes []domain.Hero
	if err := c.call(ctx, opList, http.MethodGet, c.collectionURL(nil), nil, &heroes); err != nil {
		return handleError(c, ctx, opList, err, []domain.Hero{})
	}
	c.log("fetched heroes")
	return nonNil(heroes)
}

// Get fetches a hero by id from /apis/heroes/{id}. A missing hero is a 404
// from the backend and is handled like any other transport failure.
func (c *Client) Get(ctx context.Context, id int) *domain.Hero {
	var hero domain.Hero
	if err := c.call(ctx, opGet, http.MethodGet, c.itemURL(id), nil, &hero); err != nil {
		return handleError[*domain.Hero](c, ctx, fmt.Sprintf("%s id=%d", opGet, id), err, nil)
	}
	c.log(fmt.Sprintf("fetched hero id=%d", id))
	return &hero
}

// GetNo404 looks a hero up through the collection filter instead, so a missing
// hero is an ordinary nil result rather than a failure.
func (c *Client) GetNo404(ctx context.Context, id int) *domain.Hero {
	var heroes []domain.Hero
	q := url.Values{"id": {strconv.Itoa(id)}}
	if err := c.call(ctx, opGetNo404, http.MethodGet, c.collectionURL(q), nil, &heroes); err != nil {
		return handleError[*domain.Hero](c, ctx, fmt.Sprintf("%s id=%d", opGetNo404, id), err, nil)
	}
	if len(heroes) == 0 {
		c.log(fmt.Sprintf("did not find hero id=%d", id))
		return nil
	}
	c.log(fmt.Sprintf("fetched hero id=%d", id))
	return &heroes[0]
}

// Search returns heroes whose name contains term. A blank term resolves to an
// empty slice without touching the network.
func (c *Client) Search(ctx context.Context, term string) []domain.Hero {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Hero{}
	}

	var heroes []domain.Hero
	if err := c.call(ctx, opSearch, http.MethodGet, c.collectionURL(url.Values{"name": {term}}), nil, &heroes); err != nil {
		return handleError(c, ctx, opSearch, err, []domain.Hero{})
	}
	if len(heroes) > 0 {
		c.log(fmt.Sprintf("found heroes matching %q", term))
	} else {
		c.log(fmt.Sprintf("no heroes matching %q", term))
	}
	return nonNil(heroes)
}

// Add creates a hero and returns it with its backend-assigned id, or nil on failure.
func (c *Client) Add(ctx context.Context, hero domain.Hero) *domain.Hero {
	var created domain.Hero
	if err := c.call(ctx, opAdd, http.MethodPost, c.collectionURL(nil), domain.Hero{Name: hero.Name}, &created); err != nil {
		return handleError[*domain.Hero](c, ctx, opAdd, err, nil)
	}
	c.log(fmt.Sprintf("added hero w/ id=%d", created.ID))
	return &created
}

// Update replaces the whole record. It reports whether the backend acknowledged it.
func (c *Client) Update(ctx context.Context, hero domain.Hero) bool {
	if err := c.call(ctx, opUpdate, http.MethodPut, c.collectionURL(nil), hero, nil); err != nil {
		return handleError(c, ctx, opUpdate, err, false)
	}
	c.log(fmt.Sprintf("updated hero id=%d", hero.ID))
	return true
}

// Delete removes the hero identified by ref, which may be a domain.Hero or a
// domain.HeroID. It reports whether the backend acknowledged it.
func (c *Client) Delete(ctx context.Context, ref domain.HeroRef) bool {
	id := ref.RefID()
	if err := c.call(ctx, opDelete, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return handleError(c, ctx, opDelete, err, false)
	}
	c.log(fmt.Sprintf("deleted hero id=%d", id))
	return true
}

// handleError is the single failure path of the client: report to the
// diagnostic log, add a message naming the operation, return the fallback.
// Requests abandoned by their caller are not failures.
func handleError[T any](c *Client, ctx context.Context, operation string, err error, fallback T) T {
	if abandoned(ctx, err) {
		c.logger.Debug("Request abandoned by caller", "operation", operation, "error", err)
		return fallback
	}
	c.logger.Error("Hero request failed", "operation", operation, "error", err)
	c.log(fmt.Sprintf("%s failed: %v", operation, err))
	return fallback
}

// abandoned reports whether err comes from the caller canceling ctx. An
// expired deadline is a failed request.
func abandoned(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.Canceled) && errors.Is(err, context.Canceled)
}

func (c *Client) log(message string) {
	if c.messages != nil {
		c.messages.Add(messagePrefix + message)
	}
}

// call performs one JSON request and records its outcome.
func (c *Client) call(ctx context.Context, operation, method, rawURL string, body, out any) error {
	start := time.Now()
	err := c.do(ctx, method, rawURL, body, out)
	if c.recorder != nil {
		outcome := metrics.OutcomeSuccess
		switch {
		case err != nil && abandoned(ctx, err):
			outcome = metrics.OutcomeAborted
		case err != nil:
			outcome = metrics.OutcomeFailure
		}
		c.recorder.ObserveRequest(operation, outcome, time.Since(start))
	}
	return err
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &HTTPError{Method: method, URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) collectionURL(q url.Values) string {
	u := c.baseURL + CollectionPath
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) itemURL(id int) string {
	return c.baseURL + CollectionPath + "/" + strconv.Itoa(id)
}

func nonNil(heroes []domain.Hero) []domain.Hero {
	if heroes == nil {
		return []domain.Hero{}
	}
	return heroes
}
