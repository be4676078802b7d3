package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

// HotelHandler handles HTTP requests for catalog operations.
type HotelHandler struct {
	catalog ports.CatalogService
}

func NewHotelHandler(catalog ports.CatalogService) *HotelHandler {
	return &HotelHandler{catalog: catalog}
}

type createHotelRequest struct {
	HotelID  string  `json:"hotelId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type availableHotelsRequest struct {
	Date string `json:"date" validate:"required"`
}

type hotelData struct {
	HotelID  string  `json:"hotelId"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

// Create registers a new hotel. Administrator accounts only.
//
// @Summary      Create a new hotel
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHotelRequest  true  "Hotel details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /v1/hotels [post]
func (h *HotelHandler) Create(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createHotelRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	hotel, err := h.catalog.CreateHotel(c.Request().Context(), ports.CreateHotelInput{
		CallerUserID: userID,
		Code:         req.HotelID,
		Name:         req.Name,
		Location:     req.Location,
		Price:        req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return fail(c, http.StatusForbidden, "only admin can create a hotel")
		case errors.Is(err, domain.ErrDuplicateHotelCode), errors.Is(err, domain.ErrDuplicateHotelName):
			return fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return err
	}

	return respond(c, http.StatusCreated, "Hotel created successfully", hotelData{
		HotelID:  hotel.Code,
		Name:     hotel.Name,
		Location: hotel.Location,
		Price:    hotel.Price,
	})
}

// Available lists hotels with no booking on the requested date.
//
// @Summary      List hotels available on a date
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      availableHotelsRequest  true  "Date to query (YYYY-MM-DD, strictly future)"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /v1/hotels/view [post]
func (h *HotelHandler) Available(c echo.Context) error {
	if _, _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req availableHotelsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	day, err := parseDay(req.Date)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	hotels, err := h.catalog.AvailableHotels(c.Request().Context(), day)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return fail(c, http.StatusBadRequest, err.Error())
		}
		return err
	}

	data := make([]hotelData, 0, len(hotels))
	for _, hotel := range hotels {
		data = append(data, hotelData{
			HotelID:  hotel.Code,
			Name:     hotel.Name,
			Location: hotel.Location,
			Price:    hotel.Price,
		})
	}

	return respond(c, http.StatusOK, "Available hotels retrieved successfully", data)
}
