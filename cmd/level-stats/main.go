/*
 * Copyright (c) 2022 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/jessevdk/go-flags"
	"github.com/olekukonko/tablewriter"
	"gitlab.com/jaxnet/nipopow/config"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

type options struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	Net        string `short:"n" long:"net" description:"Network: [mainnet|testnet|regtest], overrides the configuration"`
	DataDir    string `short:"d" long:"datadir" description:"Directory of the chain store, overrides the configuration"`
	DBType     string `long:"db" description:"Chain store driver, overrides the configuration"`
	Tip        string `short:"t" long:"tip" description:"Hash of the block to start from, the stored tip by default"`
	CSV        string `long:"csv" description:"Write the histogram to this CSV file"`
}

// level-stats prints how many blocks of every superblock level the stored
// chain has, next to the expected numbers.
func main() {
	opts := options{ConfigFile: config.DefaultConfigFilename}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opts.ConfigFile)
	checkError(err)
	if opts.Net != "" {
		cfg.Net = opts.Net
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.DBType != "" {
		cfg.DBType = opts.DBType
	}
	checkError(cfg.Validate())
	params := cfg.NetParams()

	store, err := cfg.OpenStore()
	checkError(err)
	defer store.Close()

	var tip chainhash.Hash
	if opts.Tip != "" {
		hash, err := chainhash.NewHashFromStr(opts.Tip)
		checkError(err)
		tip = *hash
	} else {
		tip, err = store.Tip()
		checkError(err)
	}

	rows, err := collectLevels(store, tip, params.GenesisHash(), params.PowParams.Bounds)
	checkError(err)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Level", "Blocks", "At least", "Expected"})
	for _, row := range rows {
		table.Append([]string{
			strconv.Itoa(row.Level),
			strconv.Itoa(row.Blocks),
			strconv.Itoa(row.AtLeast),
			fmt.Sprintf("%.1f", row.Expected),
		})
	}
	table.SetFooter([]string{"", "", "tip", tip.String()})
	table.Render()

	if opts.CSV != "" {
		file, err := os.Create(opts.CSV)
		checkError(err)
		defer file.Close()
		checkError(gocsv.MarshalFile(&rows, file))
	}
}

func checkError(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}
