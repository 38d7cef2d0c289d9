package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Khusus error validasi (validator.v10) -> map field: pesan
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}
	return JsonValidationError(c, ValidationMessages(ve))
}

// ValidationMessages mengubah ValidationErrors menjadi pesan per field.
func ValidationMessages(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fe.Field() + " wajib diisi"
		case "min":
			out[fe.Field()] = fe.Field() + " minimal " + fe.Param()
		case "max":
			out[fe.Field()] = fe.Field() + " maksimal " + fe.Param()
		case "oneof":
			out[fe.Field()] = fe.Field() + " harus salah satu dari: " + fe.Param()
		case "uuid", "uuid4":
			out[fe.Field()] = fe.Field() + " harus UUID"
		case "datetime":
			out[fe.Field()] = fe.Field() + " harus berformat " + fe.Param()
		default:
			out[fe.Field()] = fe.Field() + " tidak valid (" + fe.Tag() + ")"
		}
	}
	return out
}
