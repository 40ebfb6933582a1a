package chain

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

var (
	// ErrInvalidBlock matches every verification failure.
	ErrInvalidBlock      = errors.New("invalid block")
	ErrNoPeers           = errors.New("no connected peers")
	ErrDownloadFailed    = errors.New("block download failed")
	ErrNethashMismatch   = errors.New("genesis payload hash does not match nethash")
	ErrGenesisAlreadySet = errors.New("genesis block already set")
	ErrGenesisMissing    = errors.New("genesis block not set")
	ErrUnresolvableFork  = errors.New("fork cannot be resolved")
)

// VerificationError reports a block or transaction that failed a validity check.
type VerificationError struct {
	Reason string
	Err    error
}

// NewVerificationError wraps err with the failed check.
func NewVerificationError(reason string, err error) *VerificationError {
	return &VerificationError{Reason: reason, Err: err}
}

func (e *VerificationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("verification failed: %s", e.Reason)
	}
	return fmt.Sprintf("verification failed: %s: %v", e.Reason, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Is makes every VerificationError match ErrInvalidBlock.
func (e *VerificationError) Is(target error) bool {
	return target == ErrInvalidBlock
}

// ForkTooDeepError is returned when the competing chains diverge below the rollback limit.
// The node cannot recover from it without an operator.
type ForkTooDeepError struct {
	TipHeight      uint64
	AncestorHeight uint64
	Peer           model.PeerID
	Depth          uint64
	MaxDepth       uint64
}

func (e *ForkTooDeepError) Error() string {
	peer := string(e.Peer)
	if peer == "" {
		peer = "local"
	}
	return fmt.Sprintf(
		"fork beyond max rollback depth: tip at height %d, common ancestor at or below height %d, %d blocks deep (max %d), peer %s",
		e.TipHeight, e.AncestorHeight, e.Depth, e.MaxDepth, peer,
	)
}

// IsFatal reports whether err must stop the node.
func IsFatal(err error) bool {
	var deep *ForkTooDeepError
	return errors.As(err, &deep) || errors.Is(err, ErrNethashMismatch) || errors.Is(err, ErrGenesisMissing)
}
