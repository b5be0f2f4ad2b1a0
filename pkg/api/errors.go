// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when the backend gives no usable message.
const FallbackMessage = "Ha ocurrido un error. Inténtalo de nuevo."

// ErrBadResponse marks a 2xx response whose body did not match the
// documented schema. Untyped data never leaves this package; a shape
// mismatch is an error, not a best-effort decode.
var ErrBadResponse = errors.New("malformed backend response")

// Error is a backend rejection: any non-2xx status, carrying the
// server-provided message when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// UserMessage returns the message suitable for a toast: the server's
// text, or the localized fallback.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return FallbackMessage
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
