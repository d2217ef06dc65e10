/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package chaincfg

import (
	"time"

	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// GenesisBlockOpts are the fields of a genesis header. The previous block and
// the interlink root of a genesis header are always zero: it has no ancestors.
type GenesisBlockOpts struct {
	Version   int32
	Timestamp time.Time
	Bits      uint32
	Nonce     uint32
}

// GenesisMerkleRoot is the content root committed by the genesis headers of
// all networks.
func GenesisMerkleRoot() chainhash.Hash {
	return chainhash.DoubleHashH([]byte(genesisHeadline))
}

func (opts GenesisBlockOpts) header() *wire.BlockHeader {
	return wire.NewBlockHeader(
		opts.Version,
		chainhash.ZeroHash,  // 0000000000000000000000000000000000000000000000000000000000000000
		GenesisMerkleRoot(), // 2fa66c1721371da7cb3e7ba980fda75c75ddd5581430ea654b2b68e130222520
		chainhash.ZeroHash,
		opts.Timestamp,
		opts.Bits,
		opts.Nonce,
	)
}
