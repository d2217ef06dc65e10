// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2020 The JAX.Network developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// mainNetPowLimitBits is the easiest target allowed on the main network.
// target=0000007fffff0000000000000000000000000000000000000000000000000000
const mainNetPowLimitBits uint32 = 0x1d7fffff

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name: "mainnet",
	Net:  wire.MainNet,

	PowParams: PowParams{
		PowLimit:     pow.CompactToBig(mainNetPowLimitBits),
		PowLimitBits: mainNetPowLimitBits,
		Bounds: pow.BitsBounds{
			MinExponent: 0x03,
			MaxExponent: 0x1d,
			MinBase:     minBase,
			MaxBase:     maxBase,
		},
		TargetTimePerBlock: time.Minute * 10,
	},

	ProofParams: ProofParams{M: DefaultProofM, K: DefaultProofK},

	genesis: GenesisBlockOpts{
		Version:   1,
		Timestamp: time.Unix(genesisTimestamp, 0),
		Bits:      mainNetPowLimitBits,
		Nonce:     11732827,
	},
}
