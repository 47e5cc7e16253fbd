package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the unified API envelope. Error responses carry only the
// success flag and a user-facing message; internal detail stays server-side.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// User is the public projection of an account. The password hash is never
// part of any response body.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Success writes a success envelope. token may be empty for flows that
// don't issue one.
func Success(c echo.Context, statusCode int, message string, user *User, token string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Token:   token,
		User:    user,
	})
}

// Error writes an error envelope.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// BadRequest 400 error
func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message)
}

// Conflict 409 error
func Conflict(c echo.Context, message string) error {
	return Error(c, http.StatusConflict, message)
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}
