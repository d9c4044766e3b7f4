package handler

import (
	"net/http"

	"github.com/Astemirdum/curator-library/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) SubmitBorrowRequest(c echo.Context) error {
	var req model.SubmitBorrowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.CuratorID = c.Param("curatorId")
	br, err := h.librarySvc.SubmitBorrowRequest(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, br)
}

func (h *Handler) Decide(outcome model.Outcome) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.librarySvc.Decide(c.Request().Context(), c.Param("requestId"), outcome); err != nil {
			return h.httpError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (h *Handler) RecordReturn(c echo.Context) error {
	if err := h.librarySvc.RecordReturn(c.Request().Context(), c.Param("requestId")); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListBorrowRequests(c echo.Context) error {
	items, err := h.librarySvc.ListBorrowRequests(c.Request().Context(), c.Param("curatorId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"borrowings": items})
}

func (h *Handler) SubmitAcquisitionRequest(c echo.Context) error {
	var req model.AcquisitionRequestInput
	if err := bind(c, &req); err != nil {
		return err
	}
	req.CuratorID = c.Param("curatorId")
	item, err := h.librarySvc.SubmitAcquisitionRequest(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) ListAcquisitionRequests(c echo.Context) error {
	items, err := h.librarySvc.ListAcquisitionRequests(c.Request().Context(), c.Param("curatorId"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookRequests": items})
}
