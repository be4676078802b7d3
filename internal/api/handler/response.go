package handler

import "github.com/labstack/echo/v4"

// Envelope is the canonical response shape for every operation:
// {success, statusCode, message, data?}. Error responses never carry data.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
	})
}
