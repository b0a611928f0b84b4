package sanitize

import "errors"

// ErrInvalidInput indicates a caller-supplied argument failed validation
// against its grammar. Wrapped errors name the offending field and the
// violated constraint; the raw value is never echoed for fields that could
// carry sensitive content.
var ErrInvalidInput = errors.New("invalid input")
