// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to Huma problem responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"newsreader-app/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Internal errors do not leak their message.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsFetch(err), errors.IsParse(err):
		return huma.Error502BadGateway(err.Error())
	}

	return huma.Error500InternalServerError("Internal server error")
}
