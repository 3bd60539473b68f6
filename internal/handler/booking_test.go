package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerzone/pitch-booking/internal/booking"
	"github.com/soccerzone/pitch-booking/internal/middleware"
	"github.com/soccerzone/pitch-booking/internal/model"
)

func testEngine(t *testing.T) (*booking.Engine, *booking.MemoryStore) {
	t.Helper()
	store := booking.NewMemoryStore()
	store.PutPitch(model.Pitch{
		ID:         1,
		OwnerID:    7,
		Name:       "Central Arena",
		Location:   "12 Nguyen Hue",
		Price:      "300.000đ/giờ",
		PriceValue: 300000,
		Type:       model.PitchType7v7,
		Status:     model.PitchActive,
		Slots:      append([]string(nil), model.SlotCatalog...),
	})
	return booking.New(store.Pitches(), store.Bookings(), nil, zerolog.Nop()), store
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const createBody = `{"fieldId":1,"date":"2026-09-01","timeSlot":"18:30 - 20:00","name":"Nguyen Van A","phone":"0912345678"}`

func TestCreateBookingEndpoint(t *testing.T) {
	eng, _ := testEngine(t)
	h := &BookingHandler{Engine: eng, Log: zerolog.Nop()}
	e := echo.New()
	e.POST("/api/bookings", h.Create)

	rec := doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := envelope(t, rec)
	assert.Equal(t, true, body["success"])
	bk := body["booking"].(map[string]interface{})
	assert.Equal(t, model.BookingPending, bk["status"])
	assert.Equal(t, "Central Arena", bk["fieldName"])
	assert.NotEmpty(t, bk["reference"])
}

func TestCreateBookingConflictReturns409(t *testing.T) {
	eng, _ := testEngine(t)
	h := &BookingHandler{Engine: eng, Log: zerolog.Nop()}
	e := echo.New()
	e.POST("/api/bookings", h.Create)

	rec := doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusConflict, rec.Code)
	body := envelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already booked")
}

func TestCreateBookingValidationReturns400(t *testing.T) {
	eng, _ := testEngine(t)
	h := &BookingHandler{Engine: eng, Log: zerolog.Nop()}
	e := echo.New()
	e.POST("/api/bookings", h.Create)

	bad := `{"fieldId":1,"date":"2026-09-01","timeSlot":"18:30 - 20:00","name":"A","phone":"12345"}`
	rec := doJSON(e, http.MethodPost, "/api/bookings", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/bookings", `{"fieldId":42,"date":"2026-09-01","timeSlot":"18:30 - 20:00","name":"A B","phone":"0912345678"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMockPaymentEndpoint(t *testing.T) {
	eng, store := testEngine(t)
	bh := &BookingHandler{Engine: eng, Log: zerolog.Nop()}
	ph := &PaymentHandler{Engine: eng, Log: zerolog.Nop()}
	e := echo.New()
	e.POST("/api/bookings", bh.Create)
	e.POST("/api/payments/mock", ph.Mock)

	rec := doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/payments/mock", `{"bookingId":1,"paymentMethod":"momo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := envelope(t, rec)
	bk := body["booking"].(map[string]interface{})
	assert.Equal(t, model.BookingConfirmed, bk["status"])
	assert.Equal(t, "momo", bk["paymentMethod"])

	stored, found := store.GetBooking(1)
	require.True(t, found)
	assert.Equal(t, model.BookingConfirmed, stored.Status)

	// Second payment attempt hits the already-confirmed booking.
	rec = doJSON(e, http.MethodPost, "/api/payments/mock", `{"bookingId":1,"paymentMethod":"momo"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/payments/mock", `{"bookingId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelfCancel(t *testing.T) {
	eng, _ := testEngine(t)
	h := &BookingHandler{Engine: eng, Log: zerolog.Nop()}

	// Simulates JWTAuth having stored the caller's identity.
	asUser := func(uid uint64) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(middleware.CtxUserID, uid)
				return next(c)
			}
		}
	}

	e := echo.New()
	e.POST("/api/bookings", h.Create, asUser(5))
	e.PUT("/api/bookings/:id/cancel", h.SelfCancel, asUser(5))
	e.PUT("/other/bookings/:id/cancel", h.SelfCancel, asUser(6))

	rec := doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Another user cannot cancel this booking.
	rec = doJSON(e, http.MethodPut, "/other/bookings/1/cancel", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodPut, "/api/bookings/1/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := envelope(t, rec)
	bk := body["booking"].(map[string]interface{})
	assert.Equal(t, model.BookingCancelled, bk["status"])

	// Cancelling again conflicts: the booking is no longer pending.
	rec = doJSON(e, http.MethodPut, "/api/bookings/1/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	eng, _ := testEngine(t)
	bh := &BookingHandler{Engine: eng, Log: zerolog.Nop()}
	ph := &PitchHandler{Engine: eng, Log: zerolog.Nop()}
	e := echo.New()
	e.POST("/api/bookings", bh.Create)
	e.GET("/api/pitches/:id/available", ph.Availability)

	rec := doJSON(e, http.MethodPost, "/api/bookings", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/pitches/1/available?date=2026-09-01", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := envelope(t, w)
	slots := body["bookedSlots"].([]interface{})
	require.Len(t, slots, 1)
	assert.Equal(t, "18:30 - 20:00", slots[0])

	req = httptest.NewRequest(http.MethodGet, "/api/pitches/1/available?date=bad", nil)
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
