// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// JaxNet represents which network a chain or a proof belongs to.
type JaxNet uint32

// Constants used to indicate the network. They are written into the header
// of stored chains so a store opened with the wrong network is rejected.
const (
	// MainNet represents the main network.
	MainNet JaxNet = 0x6e_69_70_6d

	// TestNet represents the test network.
	TestNet JaxNet = 0x6e_69_70_74

	// RegTest represents the regression test network.
	RegTest JaxNet = 0x6e_69_70_72
)

// bnStrings is a map of networks back to their constant names for
// pretty printing.
var bnStrings = map[JaxNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	RegTest: "RegTest",
}

// String returns the JaxNet in human-readable form.
func (n JaxNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown JaxNet (%d)", uint32(n))
}
