package processor

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// Classification places a block relative to the current tip.
type Classification int

const (
	Duplicate Classification = iota
	NextInSequence
	ForkCandidate
	FutureGap
	Malformed
)

func (c Classification) String() string {
	switch c {
	case Duplicate:
		return "duplicate"
	case NextInSequence:
		return "next_in_sequence"
	case ForkCandidate:
		return "fork_candidate"
	case FutureGap:
		return "future_gap"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// View is the part of the chain state classification reads.
type View interface {
	LastBlock() (model.Block, bool)
	KnowsBlockID(id string) bool
	IsGenesisID(id string) bool
}

type classification struct {
	kind Classification
	err  error
}

// classify is pure: it reads view and calls the stateless verifier only.
// Duplicates are recognised before signatures are checked.
func classify(block model.Block, view View, verifier Verifier, exceptions map[string]struct{}) classification {
	if err := checkStructure(block, view); err != nil {
		return classification{kind: Malformed, err: err}
	}

	tip, ok := view.LastBlock()
	if !ok {
		return classification{kind: FutureGap}
	}

	if block.Height <= tip.Height && (block.ID == tip.ID || view.KnowsBlockID(block.ID) || view.IsGenesisID(block.ID)) {
		return classification{kind: Duplicate}
	}

	if _, skip := exceptions[block.ID]; !skip {
		if err := verifier.VerifyBlock(block); err != nil {
			return classification{kind: Malformed, err: err}
		}
	}

	switch {
	case block.Height == tip.Height+1 && block.PreviousBlockID == tip.ID:
		return classification{kind: NextInSequence}
	case block.Height <= tip.Height:
		return classification{kind: ForkCandidate}
	case block.Height == tip.Height+1:
		return classification{kind: ForkCandidate}
	default:
		return classification{kind: FutureGap}
	}
}

func checkStructure(block model.Block, view View) error {
	switch {
	case block.ID == "":
		return errors.New("empty block id")
	case block.PreviousBlockID == block.ID:
		return fmt.Errorf("block %s references itself", block.ID)
	case block.Height == model.GenesisHeight && !view.IsGenesisID(block.ID):
		return fmt.Errorf("block %s at genesis height is not the genesis block", block.ID)
	case block.Height != model.GenesisHeight && block.PreviousBlockID == "":
		return fmt.Errorf("block %s at height %d has no previous block", block.ID, block.Height)
	}
	return nil
}
