package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/ports"
)

type stubCatalogService struct {
	createFn    func(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error)
	availableFn func(ctx context.Context, date time.Time) ([]*domain.Hotel, error)
}

func (s *stubCatalogService) CreateHotel(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalogService) AvailableHotels(ctx context.Context, date time.Time) ([]*domain.Hotel, error) {
	return s.availableFn(ctx, date)
}

func hotelContext(e *echo.Echo, body, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/hotels", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "root")
	c.Set("role", role)
	return c, rec
}

func TestHotelHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
			if input.CallerUserID != "root" || input.Code != "H100" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Hotel{Code: input.Code, Name: input.Name, Location: input.Location, Price: input.Price}, nil
		},
	}
	handler := NewHotelHandler(stub)

	c, rec := hotelContext(e, `{"hotelId":"H100","name":"Seaside Inn","location":"Lisbon","price":120}`, domain.RoleAdmin)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data object")
	}
	if data["hotelId"] != "H100" || data["name"] != "Seaside Inn" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestHotelHandler_Create_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewHotelHandler(stub)

	c, rec := hotelContext(e, `{"hotelId":"H100","name":"Seaside Inn","location":"Lisbon"}`, domain.RoleUser)
	_ = handler.Create(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "only admin") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHotelHandler_Create_DuplicateCode(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
			return nil, domain.ErrDuplicateHotelCode
		},
	}
	handler := NewHotelHandler(stub)

	c, rec := hotelContext(e, `{"hotelId":"H100","name":"Seaside Inn","location":"Lisbon"}`, domain.RoleAdmin)
	_ = handler.Create(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHotelHandler_Create_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		createFn: func(ctx context.Context, input ports.CreateHotelInput) (*domain.Hotel, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewHotelHandler(stub)

	c, rec := hotelContext(e, `{"hotelId":"H100"}`, domain.RoleAdmin)
	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHotelHandler_Available_Success(t *testing.T) {
	e := newTestEcho()
	want := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	stub := &stubCatalogService{
		availableFn: func(ctx context.Context, date time.Time) ([]*domain.Hotel, error) {
			if !date.Equal(want) {
				t.Fatalf("date not normalized: %v", date)
			}
			return []*domain.Hotel{
				{Code: "HB", Name: "Beta", Location: "Porto", Price: 90},
				{Code: "HC", Name: "Gamma", Location: "Faro", Price: 80},
			}, nil
		},
	}
	handler := NewHotelHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/hotels/view", strings.NewReader(`{"date":"2026-09-10"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "alice")
	c.Set("role", domain.RoleUser)

	if err := handler.Available(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items, ok := resp.Data.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 hotels, got %+v", resp.Data)
	}
}

func TestHotelHandler_Available_NonFutureDate(t *testing.T) {
	e := newTestEcho()
	stub := &stubCatalogService{
		availableFn: func(ctx context.Context, date time.Time) ([]*domain.Hotel, error) {
			return nil, domain.ErrInvalidDate
		},
	}
	handler := NewHotelHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/hotels/view", strings.NewReader(`{"date":"2020-01-01"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "alice")
	c.Set("role", domain.RoleUser)

	_ = handler.Available(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
