package server

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/IMNJL/AI-chef/internal/api"
	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/ics"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Handler processes meeting API requests.
type Handler struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
	loc   *time.Location
}

// List returns meetings overlapping the from/to dates.
// GET /api/miniapp/meetings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) List(c echo.Context) error {
	from, to, err := h.dateRange(c, false)
	if err != nil {
		return err
	}

	ms, err := h.store.List(c.Request().Context(), from, to)
	if err != nil {
		return h.storeError(err)
	}

	out := make([]api.MeetingJSON, 0, len(ms))
	for _, m := range ms {
		out = append(out, api.FromMeeting(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Create stores a new meeting.
// POST /api/miniapp/meetings
func (h *Handler) Create(c echo.Context) error {
	var req api.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	d, err := req.Draft()
	if err != nil {
		return h.storeError(err)
	}

	m, err := h.store.Create(c.Request().Context(), d)
	if err != nil {
		return h.storeError(err)
	}
	h.log.Info().Str("meeting", m.ID).Msg("meeting created")
	return c.JSON(http.StatusCreated, api.FromMeeting(*m))
}

// Update applies the non-null fields of the body.
// PATCH /api/miniapp/meetings/:id
func (h *Handler) Update(c echo.Context) error {
	id := c.Param("id")

	var req api.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	p, err := req.Patch()
	if err != nil {
		return h.storeError(err)
	}

	ctx := c.Request().Context()
	if !p.IsEmpty() {
		if err := h.store.Update(ctx, id, p); err != nil {
			return h.storeError(err)
		}
	}

	m, err := h.store.Get(ctx, id)
	if err != nil {
		return h.storeError(err)
	}
	return c.JSON(http.StatusOK, api.FromMeeting(*m))
}

// Delete cancels a meeting.
// DELETE /api/miniapp/meetings/:id
func (h *Handler) Delete(c echo.Context) error {
	if err := h.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportICS returns the meetings of a date range as an iCalendar feed.
// Without from/to it covers the month grid around today.
// GET /api/miniapp/meetings.ics
func (h *Handler) ExportICS(c echo.Context) error {
	from, to, err := h.dateRange(c, true)
	if err != nil {
		return err
	}

	ms, err := h.store.List(c.Request().Context(), from, to)
	if err != nil {
		return h.storeError(err)
	}

	// Rendered in full before the status line goes out.
	var buf bytes.Buffer
	if err := ics.Export(&buf, ms, h.now()); err != nil {
		h.log.Error().Err(err).Msg("ics export failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="aichef.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *Handler) dateRange(c echo.Context, optional bool) (time.Time, time.Time, error) {
	fromStr, toStr := c.QueryParam("from"), c.QueryParam("to")
	if fromStr == "" && toStr == "" && optional {
		first, last := dateutil.MonthGridRange(h.now().In(h.loc))
		return first, last, nil
	}
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}

	from, err := dateutil.ParseDateIn(fromStr, h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
	}
	to, err := dateutil.ParseDateIn(toStr, h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	}
	return from, to, nil
}

// storeError maps domain errors to HTTP errors.
func (h *Handler) storeError(err error) error {
	switch {
	case errors.Is(err, meeting.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Meeting not found")
	case errors.Is(err, meeting.ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, meeting.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Error().Err(err).Msg("store failure")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
