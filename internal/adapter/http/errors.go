package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/homebase/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	var forbidden *domain.ForbiddenError
	if errors.As(err, &forbidden) {
		return huma.Error403Forbidden(forbidden.Error())
	}

	switch {
	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrDocumentNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		return huma.Error409Conflict(err.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		details := make([]error, len(valErr.Fields))
		for i, f := range valErr.Fields {
			details[i] = &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
			}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return huma.Error422UnprocessableEntity(conflict.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
