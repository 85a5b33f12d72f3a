// Package domain holds the error values shared across the card service.
package domain

import "errors"

var (
	// ErrTemplateNotFound signals that a template image is missing or cannot be decoded.
	ErrTemplateNotFound = errors.New("template image not found")
	// ErrFontLoad signals that the requested font could not be loaded and a fallback face was used.
	ErrFontLoad = errors.New("font load failed")
	// ErrEmptyInput signals that no non-blank name was submitted.
	ErrEmptyInput = errors.New("no names submitted")
	// ErrTooManyNames signals that a request carries more names than allowed.
	ErrTooManyNames = errors.New("too many names")
	// ErrNameTooLong signals that a single name exceeds the allowed length.
	ErrNameTooLong = errors.New("name too long")
	// ErrUnknownTemplate signals that the requested card template is not configured.
	ErrUnknownTemplate = errors.New("unknown card template")

	// ErrInvalidAPIKey signals that the provided API key is not known.
	ErrInvalidAPIKey = errors.New("invalid api key")
	// ErrTokenStoreNotReady signals that the token store has not been loaded yet.
	// This can happen during startup when the DB isn't ready.
	ErrTokenStoreNotReady = errors.New("token store not ready")
)
