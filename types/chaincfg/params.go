// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2020 The JAX.Network developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// PowParams defines the proof-of-work rules of the network.
type PowParams struct {
	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form. Generated blocks use it by default.
	PowLimitBits uint32

	// Bounds limits the exponent and the base of the compact encoding.
	Bounds pow.BitsBounds

	// TargetTimePerBlock is the step between timestamps of generated blocks.
	TargetTimePerBlock time.Duration
}

// ProofParams are the default security parameters of the proofs.
type ProofParams struct {
	// M is the number of superblocks required on a level before the
	// builder climbs to the next one.
	M int

	// K is the number of most recent blocks always included in the proof.
	K int
}

// Params defines a network by its parameters.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.JaxNet

	PowParams   PowParams
	ProofParams ProofParams

	// genesis is the set of fields of the genesis header.
	genesis GenesisBlockOpts
}

// GenesisBlock returns a copy of the genesis header of the network.
func (p *Params) GenesisBlock() *wire.BlockHeader {
	return p.genesis.header()
}

// GenesisHash returns the block hash of the genesis header.
func (p *Params) GenesisHash() chainhash.Hash {
	return p.genesis.header().BlockHash()
}

// NetName is a network name as used in configuration and command line flags.
type NetName string

const (
	NetMainnet NetName = "mainnet"
	NetTestnet NetName = "testnet"
	NetRegtest NetName = "regtest"
)

// Params returns a copy of the parameters of the named network or nil for an
// unknown name.
func (n NetName) Params() *Params {
	var params Params
	switch n {
	case NetMainnet:
		params = MainNetParams
	case NetTestnet:
		params = TestNetParams
	case NetRegtest:
		params = RegTestParams
	default:
		return nil
	}
	return &params
}
