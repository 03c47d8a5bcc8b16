package utils

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorResponse writes the standard error payload. Unexpected failures
// (5xx) are logged with their cause and forwarded to Sentry when it is
// configured; the client only ever sees the generic message.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if status >= fiber.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"status": status,
			"method": c.Method(),
			"path":   c.Path(),
			"error":  err,
		}).Error(message)
		if err != nil {
			sentry.CaptureException(err)
		}
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// ParseUint safely parses a string to uint.
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}
