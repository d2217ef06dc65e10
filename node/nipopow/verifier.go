/*
 * Copyright (c) 2021 The JaxNetwork developers
 * Use of this source code is governed by an ISC
 * license that can be found in the LICENSE file.
 */

package nipopow

import (
	"math/big"

	"github.com/pkg/errors"
	"gitlab.com/jaxnet/nipopow/node/metrics"
	"gitlab.com/jaxnet/nipopow/types/chaincfg"
	"gitlab.com/jaxnet/nipopow/types/chainhash"
	"gitlab.com/jaxnet/nipopow/types/interlink"
	"gitlab.com/jaxnet/nipopow/types/pow"
	"gitlab.com/jaxnet/nipopow/types/wire"
)

// Verifier checks proofs against the proof-of-work rules of a network.
// It holds no state and is safe for concurrent use.
type Verifier struct {
	Bounds   pow.BitsBounds
	PowLimit *big.Int
}

// NewVerifier returns a verifier for the network.
func NewVerifier(params *chaincfg.Params) *Verifier {
	return &Verifier{
		Bounds:   params.PowParams.Bounds,
		PowLimit: params.PowParams.PowLimit,
	}
}

// Verify checks that the proof starts at expectedTip, that every entry is
// authenticated by the interlink commitment of the previous one, that every
// header has valid proof of work and that the proof ends at genesis.
// Failures are returned as *ProofError.
func (v *Verifier) Verify(proof *wire.MsgProof, expectedTip, genesis chainhash.Hash) error {
	err := v.verify(proof, expectedTip, genesis)
	metrics.ObserveVerification(err == nil)
	if err != nil {
		log.Debug().Err(err).Stringer("tip", expectedTip).Msg("Proof rejected")
	}
	return err
}

func (v *Verifier) verify(proof *wire.MsgProof, expectedTip, genesis chainhash.Hash) error {
	if proof == nil || proof.Len() == 0 {
		return &ProofError{Step: 0, Err: errors.Wrap(ErrTipMismatch, "empty proof")}
	}

	var prev *wire.BlockHeader
	var hash chainhash.Hash
	for i := range proof.Entries {
		entry := &proof.Entries[i]
		hash = entry.Header.BlockHash()

		if prev == nil {
			if hash != expectedTip {
				return &ProofError{Step: i, Hash: hash,
					Err: errors.Wrapf(ErrTipMismatch, "expected %s", expectedTip)}
			}
			if len(entry.Path) != 0 {
				return &ProofError{Step: i, Hash: hash,
					Err: errors.Wrapf(ErrTipMismatch, "tip carries a path of %d nodes", len(entry.Path))}
			}
		} else if _, ok := interlink.VerifyPath(hash, prev.InterlinkRoot, entry.Path); !ok {
			return &ProofError{Step: i, Hash: hash,
				Err: errors.Wrapf(ErrInterlinkAuthenticationMismatch,
					"not committed by interlink root %s of entry %d", prev.InterlinkRoot, i-1)}
		}

		if err := pow.CheckProofOfWork(hash, entry.Header.Bits, v.Bounds, v.PowLimit); err != nil {
			return &ProofError{Step: i, Hash: hash, Err: err}
		}

		prev = &entry.Header
	}

	if hash != genesis {
		return &ProofError{Step: proof.Len() - 1, Hash: hash,
			Err: errors.Wrapf(ErrGenesisMismatch, "expected %s", genesis)}
	}

	return nil
}

// VerifyProof reports whether the proof is valid for the tip and the genesis
// of the network.
func VerifyProof(proof *wire.MsgProof, expectedTip chainhash.Hash, params *chaincfg.Params) bool {
	return NewVerifier(params).Verify(proof, expectedTip, params.GenesisHash()) == nil
}

// Score summarises the headers of a proof.
type Score struct {
	// Levels maps a level to the number of proof headers of exactly that level.
	Levels map[int]int

	// MaxLevel is the highest level in the proof.
	MaxLevel int

	// Work is the sum of the work declared by the headers.
	Work *big.Int
}

// AtLeast returns the number of headers of level l or higher.
func (s *Score) AtLeast(l int) int {
	var n int
	for level, count := range s.Levels {
		if level >= l {
			n += count
		}
	}
	return n
}

// Best returns the level maximising 2^level * AtLeast(level) and that value.
// It compares proofs by the superchain they demonstrate.
func (s *Score) Best() (int, *big.Int) {
	var (
		best      = 0
		bestValue = new(big.Int)
	)
	for l := 0; l <= s.MaxLevel; l++ {
		value := new(big.Int).Lsh(big.NewInt(int64(s.AtLeast(l))), uint(l))
		if value.Cmp(bestValue) > 0 {
			best, bestValue = l, value
		}
	}
	return best, bestValue
}

// Score computes the level histogram and the work of the proof. Headers
// whose hash is above their target make the score fail.
func (v *Verifier) Score(proof *wire.MsgProof) (*Score, error) {
	score := &Score{Levels: make(map[int]int), Work: new(big.Int)}
	for i := range proof.Entries {
		header := &proof.Entries[i].Header
		hash := header.BlockHash()

		level, err := pow.Level(hash, header.Bits, v.Bounds)
		if err != nil {
			return nil, &ProofError{Step: i, Hash: hash, Err: err}
		}

		score.Levels[level]++
		if level > score.MaxLevel {
			score.MaxLevel = level
		}
		score.Work.Add(score.Work, pow.CalcWork(header.Bits))
	}
	return score, nil
}
