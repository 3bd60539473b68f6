// Package handler contains the Echo HTTP handlers.  Handlers parse and
// validate the request, call the booking engine or a repository, and wrap
// the result in the response envelope: {"success":true, ...} on success,
// {"success":false,"message":...} on failure.
package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// ok writes a success envelope merging the given payload fields.
func ok(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes a failure envelope with the given message.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// writeErr maps domain errors onto HTTP status codes.  Unknown errors are
// reported as 500 without leaking their text to the client; the caller is
// expected to have logged them.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSlotTaken):
		return fail(c, http.StatusConflict, "time slot is already booked")
	case errors.Is(err, repository.ErrInvalidTransition):
		return fail(c, http.StatusConflict, "booking status does not allow this change")
	case errors.Is(err, repository.ErrPitchNotFound):
		return fail(c, http.StatusNotFound, "pitch not found")
	case errors.Is(err, repository.ErrBookingNotFound):
		return fail(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, repository.ErrEmailExists):
		return fail(c, http.StatusConflict, "email is already registered")
	case errors.Is(err, sql.ErrNoRows):
		return fail(c, http.StatusNotFound, "not found")
	default:
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// pagination reads page/limit query parameters with sane bounds.
func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
