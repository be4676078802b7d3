package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// BookingHandler handles HTTP requests for reservation operations. Both
// operations act on the authenticated principal's own account; there is no
// cross-account booking action.
type BookingHandler struct {
	reservations ports.ReservationService
}

func NewBookingHandler(reservations ports.ReservationService) *BookingHandler {
	return &BookingHandler{reservations: reservations}
}

type createBookingRequest struct {
	HotelID string `json:"hotelId" validate:"required"`
	Date    string `json:"date" validate:"required"`
}

type confirmationData struct {
	HotelName string  `json:"hotelName"`
	Price     float64 `json:"price"`
	Location  string  `json:"location"`
	CheckIn   string  `json:"checkIn"`
}

func toConfirmationData(c ports.BookingConfirmation) confirmationData {
	return confirmationData{
		HotelName: c.HotelName,
		Price:     c.Price,
		Location:  c.Location,
		CheckIn:   formatDay(c.CheckIn),
	}
}

// Create books a hotel for the authenticated account.
//
// @Summary      Book a hotel for a date
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  Envelope
// @Failure      400              {object}  Envelope
// @Failure      404              {object}  Envelope
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	day, err := parseDay(req.Date)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid booking date, please provide a future date")
	}

	result, err := h.reservations.Reserve(c.Request().Context(), ports.ReserveInput{
		HotelCode:      req.HotelID,
		UserID:         userID,
		Date:           day,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPastDate), errors.Is(err, domain.ErrInvalidDate):
			return fail(c, http.StatusBadRequest, "invalid booking date, please provide a future date")
		case errors.Is(err, domain.ErrSlotUnavailable):
			return fail(c, http.StatusBadRequest, "hotel unavailable for booking on the given date, please try another date")
		case errors.Is(err, domain.ErrInvalidInput):
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return respond(c, status, "Hotel booked successfully", toConfirmationData(result.Confirmation))
}

// List returns the authenticated account's bookings in creation order.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	confirmations, err := h.reservations.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]confirmationData, 0, len(confirmations))
	for _, conf := range confirmations {
		data = append(data, toConfirmationData(conf))
	}

	return respond(c, http.StatusOK, "User bookings retrieved successfully", data)
}
