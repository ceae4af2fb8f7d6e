package handlers

import (
	"net/http"

	"arogya-backend/internal/httpx"

	"github.com/go-playground/validator/v10"
)

func decodeJSON(r *http.Request, v interface{}) error {
	return httpx.DecodeJSON(r.Body, v)
}

func validationDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		details[field] = err.Tag()
	}
	return details
}
