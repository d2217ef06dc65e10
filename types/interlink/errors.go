/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package interlink

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned when an authentication path is requested
	// for a position that is not inside the vector.
	ErrIndexOutOfRange = errors.New("interlink index out of range")
)
