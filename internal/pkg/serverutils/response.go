package serverutils

import (
	"errors"
	"fmt"

	"grant-assist-be/internal/dto"
	"grant-assist-be/pkg/llm"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

var validate = validator.New()

// ValidateRequest checks the struct's `validate` tags and converts failures
// into a 400 fiber error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			first := vErrs[0]
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("field '%s' failed on rule '%s'", first.Field(), first.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware converts errors returned by handlers into the
// `{"error": "..."}` JSON contract with the matching HTTP status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var upstreamErr *llm.UpstreamError

		switch {
		case errors.Is(err, dto.ErrMissingMessage),
			errors.Is(err, dto.ErrUnsupportedFileType):
			status = fiber.StatusBadRequest
		case errors.Is(err, dto.ErrDocumentNotFound),
			errors.Is(err, dto.ErrFileNotFound):
			status = fiber.StatusNotFound
		case errors.As(err, &upstreamErr):
			// Upstream generation failures surface as internal errors
			status = fiber.StatusInternalServerError
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		}

		return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
}
