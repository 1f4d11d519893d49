package errors

import (
	"fmt"
	"strings"
)

// DispatchFailureError is reported when an included extrinsic fails.
// Module and Name come from the chain's error registry when it could be
// resolved; otherwise Module is empty and Name holds the raw dispatch error kind.
type DispatchFailureError struct {
	Module string
	Name   string
}

var _ error = &DispatchFailureError{}

func NewDispatchFailure(module string, name string) *DispatchFailureError {
	return &DispatchFailureError{Module: module, Name: name}
}

func (e *DispatchFailureError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("%s: %s", DispatchFailure, e.Name)
	}
	return fmt.Sprintf("%s: %s.%s", DispatchFailure, e.Module, e.Name)
}

func (e *DispatchFailureError) Is(target error) bool {
	return target == ErrDispatchFailure
}

// BatchInterruptedError reports the first inner call of a batch that failed.
// Inner calls before Index were executed and are NOT rolled back.
// UnknownIndex is set when the chain reported an index that could not be decoded.
type BatchInterruptedError struct {
	Index        uint32
	UnknownIndex bool
	Cause        *DispatchFailureError
}

var _ error = &BatchInterruptedError{}

func NewBatchInterrupted(index uint32, cause *DispatchFailureError) *BatchInterruptedError {
	return &BatchInterruptedError{Index: index, Cause: cause}
}

// NewBatchInterruptedUnknownIndex is used when the failing index can't be read
// from the event; how many earlier calls were applied is then unknown.
func NewBatchInterruptedUnknownIndex(cause *DispatchFailureError) *BatchInterruptedError {
	return &BatchInterruptedError{UnknownIndex: true, Cause: cause}
}

func (e *BatchInterruptedError) Error() string {
	if e.UnknownIndex {
		return fmt.Sprintf("%s at unknown index (earlier calls may have been applied): %v", BatchInterrupted, e.Cause)
	}
	applied := "no earlier calls"
	if e.Index > 0 {
		applied = fmt.Sprintf("calls 0..%d already applied", e.Index-1)
	}
	return fmt.Sprintf("%s at index %d (%s): %v", BatchInterrupted, e.Index, applied, e.Cause)
}

func (e *BatchInterruptedError) Is(target error) bool {
	return target == ErrBatchInterrupted
}

func (e *BatchInterruptedError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// CallFailure is one inner call that failed without aborting its batch.
type CallFailure struct {
	Index uint32
	Cause *DispatchFailureError
}

// PartialBatchError is reported when a batch completed but some of its inner
// calls failed individually, e.g. sudo-wrapped calls whose result is only
// visible in their Sudid event. Every call not listed in Failed was applied.
type PartialBatchError struct {
	Total  uint32
	Failed []CallFailure
}

var _ error = &PartialBatchError{}

func NewPartialBatch(total uint32, failed []CallFailure) *PartialBatchError {
	return &PartialBatchError{Total: total, Failed: failed}
}

// Applied is the number of inner calls that took effect.
func (e *PartialBatchError) Applied() uint32 {
	return e.Total - uint32(len(e.Failed))
}

// FailedIndexes lists the positions of the failed inner calls in batch order.
func (e *PartialBatchError) FailedIndexes() []uint32 {
	indexes := make([]uint32, len(e.Failed))
	for i, failure := range e.Failed {
		indexes[i] = failure.Index
	}
	return indexes
}

func (e *PartialBatchError) Error() string {
	parts := make([]string, len(e.Failed))
	for i, failure := range e.Failed {
		parts[i] = fmt.Sprintf("index %d: %v", failure.Index, failure.Cause)
	}
	return fmt.Sprintf("%s: %d of %d calls failed, %d applied and stand (%s)",
		BatchInterrupted, len(e.Failed), e.Total, e.Applied(), strings.Join(parts, "; "))
}

func (e *PartialBatchError) Is(target error) bool {
	return target == ErrBatchInterrupted
}

// Unwrap exposes the causes so errors.Is(err, ErrDispatchFailure) holds.
func (e *PartialBatchError) Unwrap() []error {
	causes := make([]error, 0, len(e.Failed))
	for _, failure := range e.Failed {
		if failure.Cause != nil {
			causes = append(causes, failure.Cause)
		}
	}
	return causes
}
