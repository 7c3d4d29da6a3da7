package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"
)

type contextKey string

const validatedRequestKey contextKey = "validated_request"

// Validator is implemented by request bodies.
type Validator interface {
	Validate() error
}

// ValidateRequest decodes the JSON body into T, runs its Validate method and
// stores the result in the request context for GetValidatedRequest.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req T
			reqType := reflect.TypeOf(req)
			if reqType.Kind() == reflect.Ptr {
				req = reflect.New(reqType.Elem()).Interface().(T)
			} else {
				req = reflect.New(reqType).Interface().(T)
			}

			if err := json.NewDecoder(r.Body).Decode(req); err != nil {
				utils.JSONError(w, http.StatusBadRequest, "invalid JSON in request body")
				return
			}

			if err := req.Validate(); err != nil {
				status := services.StatusOf(err)
				if status == http.StatusInternalServerError {
					status = http.StatusUnprocessableEntity
				}
				utils.JSONError(w, status, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetValidatedRequest retrieves the body stored by ValidateRequest.
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}

// WithValidatedRequest stores req as if ValidateRequest had decoded it.
func WithValidatedRequest(ctx context.Context, req any) context.Context {
	return context.WithValue(ctx, validatedRequestKey, req)
}
