/*
 * Copyright (c) 2022 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package main

import (
	"math"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/node/nipopow"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/pow"
)

// LevelRow is one line of the level histogram.
type LevelRow struct {
	Level    int     `csv:"level"`
	Blocks   int     `csv:"blocks"`
	AtLeast  int     `csv:"at_least"`
	Expected float64 `csv:"expected_at_least"`
}

// collectLevels walks the chain from tip back to genesis and counts the
// blocks of every level. Expected is the number of blocks of that level or
// higher an honest chain of the same length has on average.
func collectLevels(lookup nipopow.HeaderLookup, tip, genesis chainhash.Hash, bounds pow.BitsBounds) ([]LevelRow, error) {
	counts := make(map[int]int)
	maxLevel, total := 0, 0

	for hash := tip; ; {
		header, _, err := lookup.Lookup(hash)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d below the tip", total)
		}

		level, err := pow.Level(hash, header.Bits, bounds)
		if err != nil {
			return nil, errors.Wrapf(err, "block %s", hash)
		}

		counts[level]++
		total++
		if level > maxLevel {
			maxLevel = level
		}

		if hash == genesis {
			break
		}
		hash = header.PrevBlock
	}

	rows := make([]LevelRow, maxLevel+1)
	atLeast := 0
	for level := maxLevel; level >= 0; level-- {
		atLeast += counts[level]
		rows[level] = LevelRow{
			Level:    level,
			Blocks:   counts[level],
			AtLeast:  atLeast,
			Expected: float64(total) * math.Pow(2, -float64(level)),
		}
	}
	return rows, nil
}
