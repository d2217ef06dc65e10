// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/nipopow/config"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
)

const (
	flagConfig      = "config"
	flagNet         = "net"
	flagDataDir     = "data-dir"
	flagDB          = "db"
	flagLogLevel    = "log-level"
	flagBlocks      = "blocks"
	flagForkFrom    = "fork-from"
	flagForkDepth   = "fork-depth"
	flagContentRoot = "content-root"
	flagTip         = "tip"
	flagHash        = "hash"
	flagM           = "m"
	flagK           = "k"
	flagOut         = "out"
	flagProof       = "proof"
	flagStats       = "stats"
)

var standardFlags = map[string]cli.Flag{
	flagConfig: &cli.StringFlag{
		Name:    flagConfig,
		Aliases: []string{"c"},
		Value:   "./" + config.DefaultConfigFilename,
		EnvVars: []string{"NIPOPOW_CONFIG"},
		Usage:   "path to configuration, defaults are used when the file is missing",
	},
	flagNet: &cli.StringFlag{
		Name:    flagNet,
		Aliases: []string{"n"},
		Usage:   "network: [mainnet|testnet|regtest], will override value from config file",
	},
	flagDataDir: &cli.StringFlag{
		Name:    flagDataDir,
		Aliases: []string{"d"},
		EnvVars: []string{"NIPOPOW_DATA_DIR"},
		Usage:   "directory of the chain store, will override value from config file",
	},
	flagDB: &cli.StringFlag{
		Name:  flagDB,
		Usage: "chain store driver " + stringList(chainstore.SupportedDrivers()) + ", will override value from config file",
	},
	flagLogLevel: &cli.StringFlag{
		Name:  flagLogLevel,
		Usage: "logging level: [trace|debug|info|warn|error], will override value from config file",
	},
	flagBlocks: &cli.IntFlag{
		Name:    flagBlocks,
		Aliases: []string{"b"},
		Usage:   "number of blocks to generate",
		Value:   100,
	},
	flagForkFrom: &cli.StringFlag{
		Name:  flagForkFrom,
		Usage: "hash of the stored block to branch from instead of the tip",
	},
	flagForkDepth: &cli.IntFlag{
		Name:  flagForkDepth,
		Usage: "branch from the block this many blocks below the tip, stops at the genesis",
	},
	flagContentRoot: &cli.StringFlag{
		Name:  flagContentRoot,
		Usage: "hex-encoded content root of the generated blocks",
	},
	flagTip: &cli.StringFlag{
		Name:    flagTip,
		Aliases: []string{"t"},
		Usage:   "hash of the proven block, the stored tip by default",
	},
	flagHash: &cli.StringFlag{
		Name:  flagHash,
		Usage: "hash of the block, the stored tip by default",
	},
	flagM: &cli.IntFlag{
		Name:  flagM,
		Usage: "number of superblocks required before climbing a level, will override value from config file",
	},
	flagK: &cli.IntFlag{
		Name:  flagK,
		Usage: "number of most recent blocks always proven, will override value from config file",
	},
	flagOut: &cli.StringFlag{
		Name:     flagOut,
		Aliases:  []string{"o"},
		Usage:    "path of the written proof",
		Required: true,
	},
	flagProof: &cli.StringFlag{
		Name:     flagProof,
		Aliases:  []string{"p"},
		Usage:    "path of the proof to verify",
		Required: true,
	},
	flagStats: &cli.BoolFlag{
		Name:  flagStats,
		Usage: "print the level histogram and the work of the proof",
	},
}

func stringList(values []string) string {
	res := "["
	for i, v := range values {
		if i > 0 {
			res += "|"
		}
		res += v
	}
	return res + "]"
}
