package handler

import (
	"net/http"
	"strings"

	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateCurator(c echo.Context) error {
	var req model.CreateCuratorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	curator, err := h.librarySvc.CreateCurator(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, curator)
}

func (h *Handler) GetCurator(c echo.Context) error {
	curator, err := h.librarySvc.GetCurator(c.Request().Context(), c.Param("curatorId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, curator)
}

func (h *Handler) UpdatePublicNotice(c echo.Context) error {
	var req model.UpdatePublicNoticeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.CuratorID = c.Param("curatorId")
	curator, err := h.librarySvc.UpdatePublicNotice(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, curator)
}

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.librarySvc.ListBooks(c.Request().Context(), c.Param("curatorId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"books": books})
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.AddBookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.CuratorID = c.Param("curatorId")
	book, err := h.librarySvc.AddBook(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// SearchBooks answers 404 for an empty match so callers can tell "no
// results" from a failed query.
func (h *Handler) SearchBooks(c echo.Context) error {
	curatorID := strings.TrimSpace(c.Param("curatorId"))
	isbn := strings.TrimSpace(c.QueryParam("isbn"))
	if curatorID == "" || isbn == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "curatorId and isbn are required")
	}
	books, err := h.librarySvc.FindByCuratorAndIsbn(c.Request().Context(), curatorID, isbn)
	if err != nil {
		return h.httpError(err)
	}
	if len(books) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, noBooksFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"books": books})
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.librarySvc.GetBook(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) LookupMetadata(c echo.Context) error {
	return c.JSON(http.StatusOK, h.librarySvc.LookupMetadata(c.Request().Context(), c.Param("isbn")))
}
