// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines the package-level sentinel errors returned by Dense.
// Callers match them with errors.Is; no algorithm panics on a user-triggered
// error condition.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// At/Set return this rather than panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
