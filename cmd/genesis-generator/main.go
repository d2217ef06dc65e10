/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package main

import (
	"fmt"
	"math"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jessevdk/go-flags"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/pow"
)

// genesis-generator searches for the first nonce that makes the genesis header
// of the network satisfy its own proof-of-work target.
func main() {
	var opts struct {
		Net string `short:"n" long:"net" default:"regtest" description:"Name of network: [mainnet|testnet|regtest]"`
	}
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	params := chaincfg.NetName(opts.Net).Params()
	if params == nil {
		fmt.Fprintf(os.Stderr, "unknown network %q\n", opts.Net)
		os.Exit(1)
	}

	header := params.GenesisBlock()
	for nonce := uint32(0); nonce < math.MaxUint32; nonce++ {
		header.Nonce = nonce
		hash := header.BlockHash()
		if pow.CheckProofOfWork(hash, header.Bits, params.PowParams.Bounds, params.PowParams.PowLimit) != nil {
			continue
		}

		level, _ := pow.Level(hash, header.Bits, params.PowParams.Bounds)
		spew.Dump(header)
		fmt.Printf("nonce=%d hash=%s level=%d\n", nonce, hash, level)
		return
	}

	fmt.Fprintln(os.Stderr, "nonce space exhausted")
	os.Exit(1)
}
