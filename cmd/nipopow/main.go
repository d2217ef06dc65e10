// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/nipopow/config"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
)

type App struct {
	cfg    config.Config
	params *chaincfg.Params
	log    zerolog.Logger
}

func main() {
	app := &App{}
	cliApp := &cli.App{
		Name:     "nipopow",
		Usage:    "generate chains with interlinks, build and verify superblock proofs",
		Flags:    app.InitFlags(),
		Before:   app.InitCfg,
		Commands: app.getCommands(),
	}

	err := cliApp.Run(os.Args)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func (app *App) getCommands() cli.Commands {
	return []*cli.Command{
		{
			Name:  "generate",
			Usage: "extend the stored chain with new blocks",
			Flags: []cli.Flag{
				standardFlags[flagBlocks],
				standardFlags[flagForkFrom],
				standardFlags[flagForkDepth],
				standardFlags[flagContentRoot],
			},
			Action: app.GenerateCmd,
		},
		{
			Name:  "prove",
			Usage: "build the proof of a stored block and write it to a file",
			Flags: []cli.Flag{
				standardFlags[flagTip],
				standardFlags[flagM],
				standardFlags[flagK],
				standardFlags[flagOut],
			},
			Action: app.ProveCmd,
		},
		{
			Name:  "verify",
			Usage: "verify a proof read from a file",
			Flags: []cli.Flag{
				standardFlags[flagProof],
				standardFlags[flagTip],
				standardFlags[flagStats],
			},
			Action: app.VerifyCmd,
		},
		{
			Name:  "inspect",
			Usage: "dump a stored header and its interlink vector",
			Flags: []cli.Flag{
				standardFlags[flagHash],
			},
			Action: app.InspectCmd,
		},
	}
}

func (app *App) InitFlags() []cli.Flag {
	return []cli.Flag{
		standardFlags[flagConfig],
		standardFlags[flagNet],
		standardFlags[flagDataDir],
		standardFlags[flagDB],
		standardFlags[flagLogLevel],
	}
}

func (app *App) InitCfg(c *cli.Context) error {
	var err error
	app.cfg, err = config.Load(c.String(flagConfig))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if net := c.String(flagNet); net != "" {
		app.cfg.Net = net
	}
	if dataDir := c.String(flagDataDir); dataDir != "" {
		app.cfg.DataDir = dataDir
	}
	if db := c.String(flagDB); db != "" {
		app.cfg.DBType = db
	}
	if level := c.String(flagLogLevel); level != "" {
		app.cfg.LogLevel = level
	}

	if err = app.cfg.Validate(); err != nil {
		return cli.NewExitError(errors.Wrap(err, "invalid configuration"), 1)
	}

	app.log = app.cfg.SetupLoggers()
	app.params = app.cfg.NetParams()
	return nil
}

func (app *App) openStore() (chainstore.Store, error) {
	store, err := app.cfg.OpenStore()
	if err != nil {
		return nil, cli.NewExitError(errors.Wrapf(err, "unable to open %s store at %s", app.cfg.DBType, app.cfg.DBPath()), 1)
	}
	return store, nil
}

// hashOrTip parses the hash given by the flag, the stored tip is used when
// the flag is empty.
func hashOrTip(c *cli.Context, flag string, store chainstore.Store) (chainhash.Hash, error) {
	if value := c.String(flag); value != "" {
		hash, err := chainhash.NewHashFromStr(value)
		if err != nil {
			return chainhash.Hash{}, errors.Wrapf(err, "invalid --%s", flag)
		}
		return *hash, nil
	}

	tip, err := store.Tip()
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "unable to get the stored tip")
	}
	return tip, nil
}
