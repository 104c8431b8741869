package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"golang-stock-intel/internal/pipeline/dto"
)

var validate = validator.New()

// readAndValidateQuery applies `default` tags, binds query parameters over
// them and validates the result. Explicit zero values are kept so that
// validation sees them. A non-nil return is the response body.
func readAndValidateQuery(c echo.Context, req interface{}) *dto.ValidationErrorResponse {
	if err := defaults.Set(req); err != nil {
		return &dto.ValidationErrorResponse{Error: err.Error()}
	}

	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return &dto.ValidationErrorResponse{Error: "Invalid query parameters"}
	}

	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return validationResponse(err)
	}
	return nil
}

func validationResponse(err error) *dto.ValidationErrorResponse {
	resp := &dto.ValidationErrorResponse{Error: "Validation failed"}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		resp.Error = err.Error()
		return resp
	}

	for _, e := range validationErrors {
		resp.Fields = append(resp.Fields, dto.ValidationError{
			Field:   strings.ToLower(e.Field()),
			Code:    "ERR_" + strings.ToUpper(e.Tag()),
			Message: errorMessage(e),
		})
	}
	return resp
}

func errorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", e.Param())
	default:
		return fmt.Sprintf("failed on %s", e.Tag())
	}
}
