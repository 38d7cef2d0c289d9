package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/helpers/apperror"
)

// StatusFromError memetakan taksonomi error workflow ke HTTP status.
func StatusFromError(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNoWorkAvailable):
		// bukan error sistem: pool kosong
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// FromError mengubah error dari service/store menjadi response JSON konsisten.
// Error store tidak dibocorkan ke client; detailnya hanya masuk log.
func FromError(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if status >= fiber.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"reqid":  c.Locals("reqid"),
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("request failed")
		return JsonErrorCode(c, status, apperror.Code(err), "Terjadi kesalahan pada server")
	}
	return JsonErrorCode(c, status, apperror.Code(err), err.Error())
}
