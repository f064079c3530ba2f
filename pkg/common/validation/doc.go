// Package validation provides common validation utilities for regulator
// configuration.
//
// The functions return *errors.ValidationError values so constructors report
// consistent messages with the offending field and value.
package validation
