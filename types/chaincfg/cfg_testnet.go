// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2020-2021 The JAX.Network developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// testNetPowLimitBits is the easiest target allowed on the test network.
// target=0000ffff00000000000000000000000000000000000000000000000000000000
const testNetPowLimitBits uint32 = 0x1f00ffff

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name: "testnet",
	Net:  wire.TestNet,

	PowParams: PowParams{
		PowLimit:     pow.CompactToBig(testNetPowLimitBits),
		PowLimitBits: testNetPowLimitBits,
		Bounds: pow.BitsBounds{
			MinExponent: 0x03,
			MaxExponent: 0x1f,
			MinBase:     minBase,
			MaxBase:     maxBase,
		},
		TargetTimePerBlock: time.Minute,
	},

	ProofParams: ProofParams{M: DefaultProofM, K: DefaultProofK},

	genesis: GenesisBlockOpts{
		Version:   1,
		Timestamp: time.Unix(genesisTimestamp, 0),
		Bits:      testNetPowLimitBits,
		Nonce:     253098,
	},
}
