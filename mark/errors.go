// SPDX-License-Identifier: MIT

package mark

import "errors"

var (
	// ErrEmptyIndicator is returned for a zero-length indicator array.
	ErrEmptyIndicator = errors.New("mark: empty indicator")

	// ErrBadTheta is returned when theta is not a finite value in [0, 1].
	ErrBadTheta = errors.New("mark: theta must be finite and within [0, 1]")

	// ErrNaNInf is returned when the indicator contains NaN or ±Inf.
	ErrNaNInf = errors.New("mark: NaN or Inf in indicator")

	// ErrUnknownStrategy is returned for an unrecognised strategy.
	ErrUnknownStrategy = errors.New("mark: unknown strategy")
)
