package batch

import (
	"fmt"
	"time"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
)

// Policy controls how many calls go in one batch and how long to wait
// between submissions of consecutive batches.
type Policy struct {
	ChunkSize int           `yaml:"chunk_size" validate:"gt=0"`
	Delay     time.Duration `yaml:"delay" validate:"gte=0"`
}

func DefaultPolicy() Policy {
	return Policy{
		ChunkSize: 100,
		Delay:     10 * time.Second,
	}
}

// Chunk splits items into consecutive groups of size, the last one possibly
// shorter.  No group is empty, and concatenating the groups gives back items.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, append([]T{}, items[start:end]...))
	}
	return chunks, nil
}

// WrapAtomic puts calls in a single Utility.batch_all.
//
// The chain runs the calls in order and stops at the first failure.  Calls
// before the failing one are NOT rolled back: the batch is best-effort
// sequential, not transactional.  A failure is reported as a
// BatchInterrupted error naming the index of the failing call.
func WrapAtomic(calls []*call.Call) (*call.Call, error) {
	if len(calls) == 0 {
		return nil, fmt.Errorf("cannot batch zero calls")
	}
	return call.New(call.UtilityBatchAll, call.NewArg("calls", append([]*call.Call{}, calls...))), nil
}

// WrapPrivileged runs c as root, or as origin under root when origin is set.
func WrapPrivileged(c *call.Call, origin *xc.AccountID) *call.Call {
	if origin == nil {
		return call.New(call.SudoSudo, call.NewArg("call", c))
	}
	return call.New(call.SudoSudoAs,
		call.NewArg("who", call.NewMultiAddress(xc.MultiAddressId, *origin)),
		call.NewArg("call", c),
	)
}

// Assemble chunks calls by the policy and wraps every chunk in a batch.
func Assemble(calls []*call.Call, policy Policy) ([]*call.Call, error) {
	chunks, err := Chunk(calls, policy.ChunkSize)
	if err != nil {
		return nil, err
	}
	batches := make([]*call.Call, len(chunks))
	for i, chunk := range chunks {
		batches[i], err = WrapAtomic(chunk)
		if err != nil {
			return nil, err
		}
	}
	return batches, nil
}
