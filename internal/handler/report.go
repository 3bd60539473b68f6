package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
	"github.com/soccerzone/pitch-booking/internal/repository"
)

// ReportHandler aggregates confirmed bookings into revenue reports.  The
// owner route scopes rows to the caller's pitches; the admin route covers
// everything and can additionally export the report as an XLSX workbook.
type ReportHandler struct {
	Bookings *repository.BookingRepo
	Log      zerolog.Logger
}

// reportRange reads from/to query params, defaulting to the current month.
func reportRange(c echo.Context) (string, string, error) {
	now := time.Now().UTC()
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
	}
	if to == "" {
		to = now.Format(model.DateLayout)
	}
	for _, d := range []string{from, to} {
		if _, err := time.Parse(model.DateLayout, d); err != nil {
			return "", "", fmt.Errorf("dates must be YYYY-MM-DD")
		}
	}
	return from, to, nil
}

// OwnerRevenue reports revenue for the authenticated owner's pitches.
func (h *ReportHandler) OwnerRevenue(c echo.Context) error {
	return h.revenue(c, middleware.UserID(c))
}

// AdminRevenue reports revenue across all pitches.  ?format=xlsx streams
// the same data as a spreadsheet download.
func (h *ReportHandler) AdminRevenue(c echo.Context) error {
	return h.revenue(c, 0)
}

func (h *ReportHandler) revenue(c echo.Context, ownerID uint64) error {
	from, to, err := reportRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	rows, err := h.Bookings.Revenue(c.Request().Context(), from, to, ownerID)
	if err != nil {
		h.Log.Error().Err(err).Msg("revenue report failed")
		return writeErr(c, err)
	}

	var totalBookings int
	var totalRevenue int64
	for _, r := range rows {
		totalBookings += r.Bookings
		totalRevenue += r.Revenue
	}

	if ownerID == 0 && c.QueryParam("format") == "xlsx" {
		return h.writeXLSX(c, from, to, rows, totalBookings, totalRevenue)
	}
	return ok(c, http.StatusOK, echo.Map{
		"from":          from,
		"to":            to,
		"rows":          rows,
		"totalBookings": totalBookings,
		"totalRevenue":  totalRevenue,
	})
}

func (h *ReportHandler) writeXLSX(c echo.Context, from, to string, rows []repository.RevenueRow, totalBookings int, totalRevenue int64) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Revenue"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"Pitch ID", "Pitch", "Confirmed bookings", "Revenue"}
	for i, hcell := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hcell)
	}
	for i, r := range rows {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), r.PitchID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.PitchName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), r.Bookings)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), r.Revenue)
	}
	last := len(rows) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", last), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", last), totalBookings)
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", last), totalRevenue)

	name := fmt.Sprintf("revenue_%s_%s.xlsx", from, to)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
