package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	cb "github.com/Astemirdum/curator-library/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Config{
		BaseURL:    srv.URL,
		CoversURL:  srv.URL,
		UserAgent:  "test",
		RPS:        1000,
		MaxRetries: 1,
	}, cb.New(cb.Config{RecordLength: 10, Timeout: time.Minute, Percentile: 1, RecoveryRequests: 1}))
	c.backoff = time.Millisecond
	return c
}

func TestClient_GetBookByISBN(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/books", r.URL.Path)
		require.Equal(t, "test", r.Header.Get("User-Agent"))
		if r.URL.Query().Get("bibkeys") != "ISBN:9780262033848" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{"ISBN:9780262033848":{"title":"Introduction to Algorithms",
			"publishers":[{"name":"MIT Press"}],"publish_date":"2009",
			"authors":[{"name":"Thomas H. Cormen"},{"name":"Charles E. Leiserson"}],"number_of_pages":1292}}`))
	})

	book, err := c.GetBookByISBN(context.Background(), "9780262033848")
	require.NoError(t, err)
	require.Equal(t, "Introduction to Algorithms", book.Title)
	require.Equal(t, "MIT Press", book.Publisher())
	require.Equal(t, []string{"Thomas H. Cormen", "Charles E. Leiserson"}, book.AuthorNames())
	require.Equal(t, 1292, book.NumberOfPages)

	_, err = c.GetBookByISBN(context.Background(), "9780000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_CoverURL(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "false", r.URL.Query().Get("default"))
		if r.URL.Path == "/b/isbn/9780262033848-L.jpg" {
			_, _ = w.Write([]byte("jpeg"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	u, err := c.CoverURL(context.Background(), "9780262033848")
	require.NoError(t, err)
	require.Contains(t, u, "/b/isbn/9780262033848-L.jpg?default=false")

	_, err = c.CoverURL(context.Background(), "9780000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ISBN:9780262033848":{"title":"CLRS"}}`))
	})

	book, err := c.GetBookByISBN(context.Background(), "9780262033848")
	require.NoError(t, err)
	require.Equal(t, "CLRS", book.Title)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetBookByISBN(context.Background(), "9780262033848")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, int32(2), calls.Load())
}
