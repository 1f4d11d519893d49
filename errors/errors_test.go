package errors_test

import (
	"errors"
	"fmt"
	"testing"

	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/stretchr/testify/require"
)

func TestStatusMatching(t *testing.T) {
	require := require.New(t)

	err := xcerrors.AssetNotFoundf("no asset with symbol %q", "KSM")
	require.ErrorIs(err, xcerrors.ErrAssetNotFound)
	require.NotErrorIs(err, xcerrors.ErrInvalidAmount)
	require.Equal(xcerrors.AssetNotFound, xcerrors.StatusOf(err))

	wrapped := fmt.Errorf("resolving: %w", err)
	require.ErrorIs(wrapped, xcerrors.ErrAssetNotFound)
	require.True(xcerrors.IsLocalValidation(wrapped))

	require.Equal(xcerrors.UnknownError, xcerrors.StatusOf(errors.New("boom")))
	require.False(xcerrors.IsLocalValidation(xcerrors.MetadataMismatchf("x")))
}

func TestBatchInterrupted(t *testing.T) {
	require := require.New(t)

	cause := xcerrors.NewDispatchFailure("Assets", "NoPermission")
	err := xcerrors.NewBatchInterrupted(3, cause)

	require.ErrorIs(err, xcerrors.ErrBatchInterrupted)
	require.ErrorIs(err, xcerrors.ErrDispatchFailure)
	require.Equal(xcerrors.BatchInterrupted, xcerrors.StatusOf(err))
	require.Contains(err.Error(), "index 3")
	require.Contains(err.Error(), "calls 0..2 already applied")
	require.Contains(err.Error(), "Assets.NoPermission")

	first := xcerrors.NewBatchInterrupted(0, xcerrors.NewDispatchFailure("", "BadOrigin"))
	require.Contains(first.Error(), "no earlier calls")
	require.Contains(first.Error(), "DispatchFailure: BadOrigin")
}

func TestBatchInterruptedUnknownIndex(t *testing.T) {
	require := require.New(t)
	err := xcerrors.NewBatchInterruptedUnknownIndex(xcerrors.NewDispatchFailure("Assets", "BalanceLow"))
	require.True(err.UnknownIndex)
	require.ErrorIs(err, xcerrors.ErrBatchInterrupted)
	require.Contains(err.Error(), "unknown index")
	require.NotContains(err.Error(), "index 0")
}

func TestPartialBatch(t *testing.T) {
	require := require.New(t)
	err := xcerrors.NewPartialBatch(3, []xcerrors.CallFailure{
		{Index: 1, Cause: xcerrors.NewDispatchFailure("Assets", "NoPermission")},
	})
	require.ErrorIs(err, xcerrors.ErrBatchInterrupted)
	require.ErrorIs(err, xcerrors.ErrDispatchFailure)
	require.Equal(xcerrors.BatchInterrupted, xcerrors.StatusOf(fmt.Errorf("batch 0: %w", err)))
	require.EqualValues(2, err.Applied())
	require.Equal([]uint32{1}, err.FailedIndexes())
	require.Contains(err.Error(), "1 of 3 calls failed, 2 applied and stand")
	require.Contains(err.Error(), "index 1: DispatchFailure: Assets.NoPermission")
}
