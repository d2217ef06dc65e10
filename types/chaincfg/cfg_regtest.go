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

// regTestPowLimitBits is the easiest target allowed on the regression test
// network. Roughly every second hash is a valid block.
// target=7fffff0000000000000000000000000000000000000000000000000000000000
const regTestPowLimitBits uint32 = 0x207fffff

// RegTestParams defines the network parameters for the regression test
// network. The low difficulty makes it suitable for generating long chains
// in tests.
var RegTestParams = Params{
	Name: "regtest",
	Net:  wire.RegTest,

	PowParams: PowParams{
		PowLimit:     pow.CompactToBig(regTestPowLimitBits),
		PowLimitBits: regTestPowLimitBits,
		Bounds: pow.BitsBounds{
			MinExponent: 0x03,
			MaxExponent: 0x20,
			MinBase:     minBase,
			MaxBase:     maxBase,
		},
		TargetTimePerBlock: time.Second,
	},

	ProofParams: ProofParams{M: DefaultProofM, K: DefaultProofK},

	genesis: GenesisBlockOpts{
		Version:   1,
		Timestamp: time.Unix(genesisTimestamp, 0),
		Bits:      regTestPowLimitBits,
		Nonce:     0,
	},
}
