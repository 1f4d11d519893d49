package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/batch"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/client"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/cordialsys/xcmtransfer/tx"
	"github.com/sirupsen/logrus"
)

// Submitter is the part of a chain session the runner needs.
type Submitter interface {
	FetchTxInput(ctx context.Context, sender xc.AccountID) (*tx.TxInput, error)
	SubmitAndWatch(ctx context.Context, extrinsic *tx.Tx) (*client.Inclusion, error)
}

var _ Submitter = &client.Session{}

// Result is a call that was included and dispatched successfully.
type Result struct {
	Index       int    `json:"index"`
	Hash        string `json:"hash"`
	BlockHash   string `json:"block_hash"`
	BlockNumber uint64 `json:"block_number"`
}

// Runner submits calls one at a time from a single signer.
type Runner struct {
	submitter Submitter
	signer    tx.Signer
	policy    batch.Policy
}

func NewRunner(submitter Submitter, signer tx.Signer, policy batch.Policy) *Runner {
	return &Runner{submitter, signer, policy}
}

// Run submits each call and waits for it to be finalized, then waits the
// policy delay before the next one. It stops at the first failure and returns
// the calls completed so far; those are not undone.
func (r *Runner) Run(ctx context.Context, calls []*call.Call) ([]Result, error) {
	results := []Result{}
	for i, c := range calls {
		if i > 0 {
			if err := wait(ctx, r.policy.Delay); err != nil {
				return results, err
			}
		}
		log := logrus.WithFields(logrus.Fields{
			"batch":  i,
			"total":  len(calls),
			"method": c.Method(),
		})
		result, err := r.submitOne(ctx, c)
		if err != nil {
			logFailure(log, err)
			return results, fmt.Errorf("batch %d: %w", i, err)
		}
		result.Index = i
		log.WithFields(logrus.Fields{
			"hash":  result.Hash,
			"block": result.BlockNumber,
		}).Info("batch finalized")
		results = append(results, result)
	}
	return results, nil
}

func (r *Runner) submitOne(ctx context.Context, c *call.Call) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	input, err := r.submitter.FetchTxInput(ctx, r.signer.AccountID())
	if err != nil {
		return Result{}, fmt.Errorf("could not fetch tx input: %w", err)
	}
	extrinsic, err := tx.NewTx(c, r.signer.AccountID(), input)
	if err != nil {
		return Result{}, fmt.Errorf("could not build extrinsic: %w", err)
	}
	if err := tx.Sign(extrinsic, r.signer); err != nil {
		return Result{}, fmt.Errorf("could not sign extrinsic: %w", err)
	}
	inclusion, err := r.submitter.SubmitAndWatch(ctx, extrinsic)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Hash:        inclusion.Hash,
		BlockHash:   inclusion.BlockHash,
		BlockNumber: inclusion.BlockNumber,
	}, nil
}

func logFailure(log *logrus.Entry, err error) {
	var interrupted *xcerrors.BatchInterruptedError
	if errors.As(err, &interrupted) {
		log.WithFields(logrus.Fields{
			"index": interrupted.Index,
			"cause": interrupted.Cause,
		}).Error("batch interrupted, calls before the failing index were applied and stand")
		return
	}
	var partial *xcerrors.PartialBatchError
	if errors.As(err, &partial) {
		log.WithFields(logrus.Fields{
			"failed":  partial.FailedIndexes(),
			"applied": partial.Applied(),
		}).WithError(err).Error("batch completed with failed calls, the other calls were applied and stand")
		return
	}
	log.WithError(err).Error("batch failed")
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
