package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable se recorre en orden; SaleLocked va antes que Conflict porque ambos pueden envolverse juntos.
var errorTable = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrSaleLocked, fiber.StatusConflict, "SALE_LOCKED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNoPendingSales, fiber.StatusBadRequest, "NO_PENDING_SALES"},
	{domain.ErrNoDebt, fiber.StatusBadRequest, "NO_DEBT"},
	{domain.ErrPaymentTooLow, fiber.StatusBadRequest, "PAYMENT_TOO_LOW"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// StatusFor traduce un error de dominio a status HTTP y código. ok=false si no es un error conocido.
func StatusFor(err error) (status int, code string, ok bool) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code, true
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL", false
}

// ErrorHandler es el manejador central de Fiber: los handlers devuelven errores de dominio
// y aquí se convierten en dto.ErrorResponse. Los 500 se registran y no exponen el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	l := log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		status, code, ok := StatusFor(err)
		if !ok {
			l.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", GetRequestID(c)).
				Msg("error interno")
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno del servidor"})
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_BODY"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		return "INTERNAL"
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

// paramID lee un id entero positivo de la ruta; si no es válido devuelve ErrInvalidInput.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s %q no es un id válido: %w", name, c.Params(name), domain.ErrInvalidInput)
	}
	return int64(id), nil
}
