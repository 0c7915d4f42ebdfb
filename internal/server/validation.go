package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct validates a struct against its validator tags and returns
// user-presentable errors.
func ValidateStruct(s interface{}) []ValidationError {
	validate := validator.New()
	var errs []ValidationError

	err := validate.Struct(s)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: errorMessage(fe),
			})
		}
	}

	return errs
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errs,
	})
}
