package handlers

import (
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/aerointel/aerointel-backend/internal/apperr"
	"github.com/aerointel/aerointel-backend/internal/dto"
)

// ErrorHandler renders every error returned by a handler as the
// {success:false, error} envelope. Details of 5xx failures stay server side.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := fe.Message
		if fe.Code >= fiber.StatusInternalServerError {
			slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			msg = "Internal server error"
		}
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			msg = "Request body too large"
		}
		return c.Status(fe.Code).JSON(dto.Fail(msg))
	}

	e := apperr.As(err)
	status := e.HTTPStatus()
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	}
	return c.Status(status).JSON(dto.Fail(e.Public()))
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return dto.Validate(req)
}

// parseQuery binds and validates query parameters.
func parseQuery(c *fiber.Ctx, req any) error {
	if err := c.QueryParser(req); err != nil {
		return apperr.Validation("Invalid query parameters")
	}
	return dto.Validate(req)
}
