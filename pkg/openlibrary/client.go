package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cb "github.com/Astemirdum/curator-library/pkg/circuit_breaker"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("openlibrary: not found")

type Config struct {
	BaseURL    string  `envconfig:"OPENLIBRARY_URL" default:"https://openlibrary.org"`
	CoversURL  string  `envconfig:"OPENLIBRARY_COVERS_URL" default:"https://covers.openlibrary.org"`
	UserAgent  string  `envconfig:"OPENLIBRARY_USER_AGENT" default:"curator-library/1.0"`
	RPS        float64 `envconfig:"OPENLIBRARY_RPS" default:"5"`
	MaxRetries int     `envconfig:"OPENLIBRARY_MAX_RETRIES" default:"1"`
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	limiter    *rate.Limiter
	breaker    cb.CircuitBreaker
	backoff    time.Duration
}

func NewClient(cfg Config, breaker cb.CircuitBreaker) *Client {
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		breaker: breaker,
		backoff: 200 * time.Millisecond,
	}
}

type Publisher struct {
	Name string `json:"name"`
}

// BookDetails matches api/books?jscmd=data
type BookDetails struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Publishers  []Publisher `json:"publishers"`
	PublishDate string      `json:"publish_date"`
	Authors     []struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	} `json:"authors"`
	NumberOfPages int    `json:"number_of_pages"`
	Pagination    string `json:"pagination"`
}

func (b BookDetails) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

func (b BookDetails) Publisher() string {
	if len(b.Publishers) == 0 {
		return ""
	}
	return b.Publishers[0].Name
}

// GetBookByISBN returns ErrNotFound when the bibliographic source has no
// record for the isbn.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (BookDetails, error) {
	key := "ISBN:" + isbn
	u := fmt.Sprintf("%s/api/books?bibkeys=%s&jscmd=data&format=json",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.QueryEscape(key))

	var res map[string]BookDetails
	if err := c.getJSON(ctx, u, &res); err != nil {
		return BookDetails{}, err
	}
	details, ok := res[key]
	if !ok {
		return BookDetails{}, ErrNotFound
	}
	return details, nil
}

// CoverURL probes the covers endpoint. default=false makes the endpoint answer
// 404 instead of serving a blank image for unknown ISBNs.
func (c *Client) CoverURL(ctx context.Context, isbn string) (string, error) {
	u := fmt.Sprintf("%s/b/isbn/%s-L.jpg?default=false",
		strings.TrimRight(c.cfg.CoversURL, "/"), url.PathEscape(isbn))

	resp, err := c.do(ctx, u)
	if err != nil {
		return "", err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return u, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target interface{}) error {
	resp, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// do performs a GET with retries on 429/5xx. The caller owns the body of a
// successful response.
func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	var lastErr error
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(c.backoff * time.Duration(1<<uint(i-1))):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var (
			resp     *http.Response
			retry    bool
			notFound bool
		)
		err := c.breaker.Call(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", c.cfg.UserAgent)

			r, err := c.httpClient.Do(req)
			if err != nil {
				retry = true
				return err
			}
			switch {
			case r.StatusCode == http.StatusOK:
				resp = r
				return nil
			case r.StatusCode == http.StatusNotFound:
				r.Body.Close()
				notFound = true
				return nil
			case r.StatusCode == http.StatusTooManyRequests || r.StatusCode >= 500:
				r.Body.Close()
				retry = true
				return fmt.Errorf("unexpected status code: %d", r.StatusCode)
			default:
				r.Body.Close()
				return fmt.Errorf("unexpected status code: %d", r.StatusCode)
			}
		})
		if notFound {
			return nil, ErrNotFound
		}
		if err == nil {
			return resp, nil
		}
		if !retry || errors.Is(err, cb.ErrOpenCB) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, errors.Wrapf(lastErr, "after %d retries", c.cfg.MaxRetries)
}
