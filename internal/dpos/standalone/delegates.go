package standalone

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
)

var _ chain.Delegates = (*StaticDelegates)(nil)

// StaticDelegates is a fixed forging round: slot n belongs to keys[n % len(keys)].
type StaticDelegates struct {
	keys []string
}

func NewStaticDelegates(keys []string) (*StaticDelegates, error) {
	round := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			return nil, fmt.Errorf("delegate %s listed twice", k)
		}
		seen[k] = struct{}{}
		round = append(round, k)
	}
	if len(round) == 0 {
		return nil, errors.New("at least one delegate is required")
	}
	return &StaticDelegates{keys: round}, nil
}

func (d *StaticDelegates) ForgerAt(ctx context.Context, _ uint64, slot uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.keys[slot%uint64(len(d.keys))], nil
}

func (d *StaticDelegates) Len() int { return len(d.keys) }
