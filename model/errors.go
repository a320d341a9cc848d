// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import "github.com/born-ml/phenomics/internal/validate"

// Error categories. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	// ErrType reports an argument of the wrong kind, such as a float where a
	// count is expected.
	ErrType = validate.ErrType

	// ErrValue reports an argument of the right kind but outside its legal
	// range or set.
	ErrValue = validate.ErrValue

	// ErrState reports a call that is not allowed in the model's current
	// state or for its problem type.
	ErrState = validate.ErrState
)

// Error carries the category, the offending parameter or operation and a
// description.
type Error = validate.Error
