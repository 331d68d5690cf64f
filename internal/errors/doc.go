// Package errors provides structured, coded errors for vhook.
//
// Each error carries a short code (e.g. "E001") that maps to a registered
// template holding the category, message and a longer explanation. Errors
// built from a code compare equal under errors.Is to any other error with
// the same code, so callers can match on a sentinel:
//
//	if errors.Is(err, vherrors.New("E003")) { ... }
//
// # Categories
//
//   - runtime: hook misuse, invalid render arguments
//   - protocol: malformed live-preview messages
//   - config: configuration loading and validation
//   - cli: command-line usage
//
// # Formatting
//
// Format renders a multi-line, colourised message for terminals;
// FormatCompact renders a single line suitable for logs.
package errors
