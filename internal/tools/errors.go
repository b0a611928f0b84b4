package tools

import "errors"

// Sentinel errors for tool dispatch preconditions. Both fire before any
// sanitization or network I/O.

// ErrUnknownTool indicates the requested tool name is not in the catalogue.
var ErrUnknownTool = errors.New("unknown tool")

// ErrMissingArguments indicates one or more required arguments were absent.
// The wrapped message names every missing key, not just the first.
var ErrMissingArguments = errors.New("missing required arguments")
