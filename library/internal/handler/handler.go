package handler

import (
	"context"
	"net/http"

	"github.com/Astemirdum/curator-library/library/internal/errs"
	"github.com/Astemirdum/curator-library/library/internal/model"
	md "github.com/Astemirdum/curator-library/pkg/middleware"
	"github.com/Astemirdum/curator-library/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const noBooksFound = "No books found matching the criteria"

type Handler struct {
	librarySvc LibraryService
	log        *zap.Logger
}

func New(librarySvc LibraryService, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/curators", h.CreateCurator)
	api.GET("/curators/:curatorId", h.GetCurator)
	api.PUT("/curators/:curatorId/public-notice", h.UpdatePublicNotice)

	api.GET("/curators/:curatorId/books", h.ListBooks)
	api.POST("/curators/:curatorId/books", h.AddBook)
	api.GET("/curators/:curatorId/books/search", h.SearchBooks)
	api.GET("/books/:bookId", h.GetBook)
	api.GET("/isbn/:isbn", h.LookupMetadata)

	api.POST("/curators/:curatorId/borrow-requests", h.SubmitBorrowRequest)
	api.GET("/curators/:curatorId/borrow-requests", h.ListBorrowRequests)
	api.POST("/borrow-requests/:requestId/approve", h.Decide(model.OutcomeApprove))
	api.POST("/borrow-requests/:requestId/reject", h.Decide(model.OutcomeReject))
	api.POST("/borrow-requests/:requestId/return", h.RecordReturn)

	api.POST("/curators/:curatorId/book-requests", h.SubmitAcquisitionRequest)
	api.GET("/curators/:curatorId/book-requests", h.ListAcquisitionRequests)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError keeps the three borrower-facing paths apart: fix your input,
// book unavailable, try again later.
func (h *Handler) httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidState):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request timed out, try again later")
	case errors.Is(err, errs.ErrStorage):
		h.log.Error("storage", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "storage unavailable, try again later")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// bind decodes and validates the body. Failures are always 400.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
