// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/jaxnet/nipopow/node/metrics"
	"gitlab.com/jaxnet/nipopow/node/mining/cpuminer"
	"gitlab.com/jaxnet/nipopow/node/nipopow"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

const metricsInterval = 5 * time.Second

func (app *App) GenerateCmd(c *cli.Context) error {
	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	miner := cpuminer.New(cpuminer.Config{
		ChainParams: app.params,
		Workers:     app.cfg.Miner.Workers,
		MaxAttempts: app.cfg.Miner.MaxAttempts,
	})

	chain, err := nipopow.Resume(app.params, store, miner)
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to load chain"), 1)
	}

	chain, err = branchPoint(chain, c.String(flagForkFrom), c.Int(flagForkDepth))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if root := c.String(flagContentRoot); root != "" {
		hash, err := chainhash.NewHashFromStr(root)
		if err != nil {
			return cli.NewExitError(errors.Wrapf(err, "invalid --%s", flagContentRoot), 1)
		}
		chain.SetContentRoot(*hash)
	}

	ctx, cancel := interruptContext(context.Background(), app.log)
	defer cancel()

	if app.cfg.Metrics.Enabled {
		manager := metrics.Metrics(ctx, metricsInterval)
		manager.Add(metrics.MetricsOfChain(chain, app.log))
		go func() {
			if err := manager.Listen(ctx, "/metrics", app.cfg.Metrics.Addr); err != nil {
				app.log.Error().Err(err).Str("addr", app.cfg.Metrics.Addr).Msg("Metrics server failed")
			}
		}()
	}

	started := time.Now()
	hashes, err := chain.Generate(ctx, c.Int(flagBlocks), nil)
	if len(hashes) > 0 {
		app.log.Info().Int("blocks", len(hashes)).Dur("elapsed", time.Since(started)).
			Uint64("hashes", miner.HashesCompleted()).Msg("Chain extended")
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	tip, vector := chain.Tip()
	fmt.Printf("tip=%s interlink=%d\n", tip.BlockHash(), vector.Len())
	return nil
}

// branchPoint returns the chain extended by generate: a branch from the block
// given by hash or by depth below the tip, or the chain itself when neither
// is set.
func branchPoint(chain *nipopow.Chain, from string, depth int) (*nipopow.Chain, error) {
	switch {
	case depth < 0:
		return nil, errors.Errorf("invalid --%s %d", flagForkDepth, depth)
	case from != "" && depth > 0:
		return nil, errors.Errorf("--%s and --%s are mutually exclusive", flagForkFrom, flagForkDepth)
	case from != "":
		hash, err := chainhash.NewHashFromStr(from)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%s", flagForkFrom)
		}
		return chain.Fork(*hash)
	case depth > 0:
		ancestor, err := chain.Ancestor(depth)
		if err != nil {
			return nil, err
		}
		return chain.Fork(ancestor.BlockHash())
	}
	return chain, nil
}

func (app *App) ProveCmd(c *cli.Context) error {
	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tip, err := hashOrTip(c, flagTip, store)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	m, k := app.params.ProofParams.M, app.params.ProofParams.K
	if c.IsSet(flagM) {
		m = c.Int(flagM)
	}
	if c.IsSet(flagK) {
		k = c.Int(flagK)
	}

	proof, err := nipopow.NewBuilder(store, app.params).WithSecurity(m, k).Build(tip)
	if err != nil {
		return cli.NewExitError(errors.Wrapf(err, "unable to build proof for %s", tip), 1)
	}

	out, err := os.Create(c.String(flagOut))
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to open out file"), 1)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	if err = proof.Serialize(writer); err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to encode proof"), 1)
	}
	if err = writer.Flush(); err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to write proof"), 1)
	}

	fmt.Printf("tip=%s entries=%d bytes=%d m=%d k=%d\n", tip, proof.Len(), proof.SerializeSize(), m, k)
	return nil
}

func (app *App) VerifyCmd(c *cli.Context) error {
	file, err := os.Open(c.String(flagProof))
	if err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to open proof"), 1)
	}
	defer file.Close()

	var proof wire.MsgProof
	if err = proof.Deserialize(bufio.NewReader(file)); err != nil {
		return cli.NewExitError(errors.Wrap(err, "unable to decode proof"), 1)
	}

	var tip chainhash.Hash
	if c.String(flagTip) != "" {
		hash, err := chainhash.NewHashFromStr(c.String(flagTip))
		if err != nil {
			return cli.NewExitError(errors.Wrapf(err, "invalid --%s", flagTip), 1)
		}
		tip = *hash
	} else {
		store, err := app.openStore()
		if err != nil {
			return err
		}
		tip, err = store.Tip()
		store.Close()
		if err != nil {
			return cli.NewExitError(errors.Wrap(err, "unable to get the stored tip"), 1)
		}
	}

	verifier := nipopow.NewVerifier(app.params)
	if c.Bool(flagStats) {
		score, err := verifier.Score(&proof)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		printScore(score)
	}

	if err = verifier.Verify(&proof, tip, app.params.GenesisHash()); err != nil {
		return cli.NewExitError(errors.Wrap(err, "proof is invalid"), 2)
	}

	fmt.Printf("proof of %s is valid, %d entries\n", tip, proof.Len())
	return nil
}

func (app *App) InspectCmd(c *cli.Context) error {
	store, err := app.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	hash, err := hashOrTip(c, flagHash, store)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	header, vector, err := store.Lookup(hash)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	level, err := pow.Level(hash, header.Bits, app.params.PowParams.Bounds)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("hash=%s level=%d\n", hash, level)
	spew.Dump(header)
	for i, link := range vector.Flatten() {
		fmt.Printf("interlink[%d] = %s\n", i, link)
	}
	return nil
}

func printScore(score *nipopow.Score) {
	levels := make([]int, 0, len(score.Levels))
	for level := range score.Levels {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for _, level := range levels {
		fmt.Printf("level %2d: %d headers, %d at or above\n", level, score.Levels[level], score.AtLeast(level))
	}
	best, value := score.Best()
	fmt.Printf("best level=%d score=%s work=%s\n", best, value, score.Work)
}
