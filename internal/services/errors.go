package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds for the two failure surfaces of the pipeline: reading the
// uploaded resume and calling the AI endpoint. Parse gaps are not errors;
// the parser degrades to defaults instead.
var (
	ErrExtraction    = errors.New("resume text extraction failed")
	ErrAuth          = errors.New("ai service rejected the credentials")
	ErrRateLimit     = errors.New("ai service rate limit exceeded")
	ErrNetwork       = errors.New("ai service could not be reached")
	ErrEmptyResponse = errors.New("ai service returned an empty response")
)

// UserMessage maps an error kind to the plain-language message shown to the
// user. Anything unrecognized gets a generic analysis failure message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrExtraction):
		return "The uploaded resume could not be read. Please upload a valid, unencrypted PDF."
	case errors.Is(err, ErrAuth):
		return "The analysis service rejected our credentials. Please contact support."
	case errors.Is(err, ErrRateLimit):
		return "The analysis service is busy right now. Please try again in a few minutes."
	case errors.Is(err, ErrNetwork):
		return "The analysis service could not be reached. Please try again later."
	case errors.Is(err, ErrEmptyResponse):
		return "The analysis service returned no usable answer. Please try again."
	default:
		return "The analysis failed unexpectedly. Please try again."
	}
}

// HTTPStatus maps an error kind to the status an HTTP handler should return.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrAuth):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrRateLimit):
		return fiber.StatusTooManyRequests
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrEmptyResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
