package handler

import (
	"github.com/labstack/echo/v4"
)

// Every response carries the same envelope: successes are
// {success:true, ...} and failures are {success:false, error, details?}.

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   msg,
	})
}

func failWithDetails(c echo.Context, status int, msg string, err error) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   msg,
		"details": err.Error(),
	})
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"message": msg,
	})
}
