package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"industrial-catalog/internal/models"
)

// ErrorResponse es el cuerpo de todas las respuestas de error
type ErrorResponse struct {
	Message string                   `json:"message"`
	Errors  []models.ValidationError `json:"errors,omitempty"`
}

func init() {
	binding.Validator = modelValidator{}
}

// modelValidator hace que gin valide con las mismas reglas (y nombres de campo JSON) que models.Validate
type modelValidator struct{}

func (modelValidator) ValidateStruct(obj interface{}) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return models.Validate(obj)
}

func (modelValidator) Engine() interface{} {
	return models.Validator()
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

// respondInternal registra el error real y responde 500 con un mensaje genérico
func respondInternal(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	zap.L().Error(message, zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, message)
}

// respondInvalid responde 400 con el detalle por campo del error de binding
func respondInvalid(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message, Errors: bindingErrors(err)})
}

func bindingErrors(err error) []models.ValidationError {
	if details := models.ValidationErrors(err); details != nil {
		return details
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return []models.ValidationError{{Rule: "type", Message: "request body must be a JSON object"}}
	case errors.As(err, &typeErr):
		return []models.ValidationError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: typeErr.Field + " must be of type " + typeErr.Type.String(),
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []models.ValidationError{{Rule: "json", Message: "request body must be valid JSON"}}
	}
	return []models.ValidationError{{Rule: "invalid", Message: err.Error()}}
}
