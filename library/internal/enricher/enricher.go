package enricher

import (
	"context"
	"time"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/metrics"
	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/Astemirdum/curator-library/pkg/openlibrary"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const isbnLookupLen = 13

type Source interface {
	GetBookByISBN(ctx context.Context, isbn string) (openlibrary.BookDetails, error)
	CoverURL(ctx context.Context, isbn string) (string, error)
}

var _ Source = (*openlibrary.Client)(nil)

type Enricher struct {
	source  Source
	cache   Cache
	timeout time.Duration
	log     *zap.Logger
}

func New(source Source, cache Cache, timeout time.Duration, log *zap.Logger) *Enricher {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Enricher{
		source:  source,
		cache:   cache,
		timeout: timeout,
		log:     log.Named("enricher"),
	}
}

// ReadyForLookup reports whether isbn is a complete 13-digit identifier.
// Partial input never reaches the network.
func ReadyForLookup(isbn string) bool {
	if len(isbn) != isbnLookupLen {
		return false
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Lookup never fails. Upstream failures leave the affected fields empty and are
// recorded in SourceErr / CoverErr.
func (e *Enricher) Lookup(ctx context.Context, isbn string) model.Metadata {
	if !ReadyForLookup(isbn) {
		metrics.MetadataLookups.WithLabelValues("skipped").Inc()
		return model.Metadata{ISBN: isbn, Authors: []string{}}
	}

	cached, ok, err := e.cache.Get(ctx, isbn)
	if err != nil {
		e.log.Warn("cache get", zap.String("isbn", isbn), zap.Error(err))
	} else if ok {
		metrics.MetadataLookups.WithLabelValues("hit").Inc()
		return cached
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		details   openlibrary.BookDetails
		unknown   bool
		cover     string
		sourceErr error
		coverErr  error
	)
	// errors are kept per call so one failing never cancels the other
	var g errgroup.Group
	g.Go(func() error {
		d, err := e.source.GetBookByISBN(ctx, isbn)
		switch {
		case err == nil:
			details = d
		case errors.Is(err, openlibrary.ErrNotFound):
			unknown = true
		default:
			sourceErr = errors.Wrap(errs.ErrExternalSource, err.Error())
		}
		return nil
	})
	g.Go(func() error {
		u, err := e.source.CoverURL(ctx, isbn)
		switch {
		case err == nil:
			cover = u
		case !errors.Is(err, openlibrary.ErrNotFound):
			coverErr = errors.Wrap(errs.ErrExternalSource, err.Error())
		}
		return nil
	})
	_ = g.Wait()

	// an unknown isbn has no cover reference, whatever the cover endpoint says
	if unknown {
		cover = ""
	}

	md := model.Metadata{
		ISBN:        isbn,
		Title:       details.Title,
		Authors:     details.AuthorNames(),
		Publisher:   details.Publisher(),
		PublishDate: details.PublishDate,
		Pagination:  details.NumberOfPages,
		CoverURL:    cover,
		SourceErr:   sourceErr,
		CoverErr:    coverErr,
	}

	switch {
	case sourceErr != nil || coverErr != nil:
		metrics.MetadataLookups.WithLabelValues("degraded").Inc()
		e.log.Warn("metadata lookup degraded",
			zap.String("isbn", isbn),
			zap.NamedError("source", sourceErr),
			zap.NamedError("cover", coverErr),
		)
	case md.Found():
		metrics.MetadataLookups.WithLabelValues("found").Inc()
		if err := e.cache.Set(ctx, isbn, md); err != nil {
			e.log.Warn("cache set", zap.String("isbn", isbn), zap.Error(err))
		}
	default:
		metrics.MetadataLookups.WithLabelValues("not_found").Inc()
		e.log.Debug("isbn unknown", zap.String("isbn", isbn))
	}
	return md
}
