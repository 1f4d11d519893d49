package errors

import (
	"errors"
	"fmt"
)

type Status string

// The address could not be decoded (alphabet, checksum, or length).
const InvalidAddressFormat Status = "InvalidAddressFormat"

// The address decoded, but was encoded for a different network.
const NetworkPrefixMismatch Status = "NetworkPrefixMismatch"

// The chain does not expose an asset registry that can be read.
const RegistryUnavailable Status = "RegistryUnavailable"

// The asset parameter and metadata tables could not be joined.
const MetadataMismatch Status = "MetadataMismatch"

// No registered asset matched the requested symbol.
const AssetNotFound Status = "AssetNotFound"

// The asset cannot be sent over the requested route.
const UnsupportedAssetForRoute Status = "UnsupportedAssetForRoute"

// The amount is not valid for the operation (not positive, underflow, malformed).
const InvalidAmount Status = "InvalidAmount"

// An inner call of a batch failed; calls before it were already applied.
const BatchInterrupted Status = "BatchInterrupted"

// The extrinsic was included but failed to dispatch.
const DispatchFailure Status = "DispatchFailure"

// A network error occured -- there may be nothing wrong with the call
const NetworkError Status = "NetworkError"

// No outcome for this error known
const UnknownError Status = "UnknownError"

type Error struct {
	Status  Status
	Message string
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Is matches any other *Error with the same status, so callers can do
// errors.Is(err, xcerrors.ErrAssetNotFound).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Status == e.Status
	}
	return false
}

func Errorf(status Status, format string, args ...interface{}) error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidAddressFormat     = &Error{Status: InvalidAddressFormat}
	ErrNetworkPrefixMismatch    = &Error{Status: NetworkPrefixMismatch}
	ErrRegistryUnavailable      = &Error{Status: RegistryUnavailable}
	ErrMetadataMismatch         = &Error{Status: MetadataMismatch}
	ErrAssetNotFound            = &Error{Status: AssetNotFound}
	ErrUnsupportedAssetForRoute = &Error{Status: UnsupportedAssetForRoute}
	ErrInvalidAmount            = &Error{Status: InvalidAmount}
	ErrBatchInterrupted         = &Error{Status: BatchInterrupted}
	ErrDispatchFailure          = &Error{Status: DispatchFailure}
	ErrNetworkError             = &Error{Status: NetworkError}
)

func InvalidAddressFormatf(format string, args ...interface{}) error {
	return Errorf(InvalidAddressFormat, format, args...)
}

func NetworkPrefixMismatchf(format string, args ...interface{}) error {
	return Errorf(NetworkPrefixMismatch, format, args...)
}

func RegistryUnavailablef(format string, args ...interface{}) error {
	return Errorf(RegistryUnavailable, format, args...)
}

func MetadataMismatchf(format string, args ...interface{}) error {
	return Errorf(MetadataMismatch, format, args...)
}

func AssetNotFoundf(format string, args ...interface{}) error {
	return Errorf(AssetNotFound, format, args...)
}

func UnsupportedAssetForRoutef(format string, args ...interface{}) error {
	return Errorf(UnsupportedAssetForRoute, format, args...)
}

func InvalidAmountf(format string, args ...interface{}) error {
	return Errorf(InvalidAmount, format, args...)
}

func NetworkErrorf(format string, args ...interface{}) error {
	return Errorf(NetworkError, format, args...)
}

func Unknownf(format string, args ...interface{}) error {
	return Errorf(UnknownError, format, args...)
}

// StatusOf returns the status of the first *Error in the chain, or UnknownError.
func StatusOf(err error) Status {
	var xcErr *Error
	if errors.As(err, &xcErr) {
		return xcErr.Status
	}
	var batchErr *BatchInterruptedError
	if errors.As(err, &batchErr) {
		return BatchInterrupted
	}
	var partialErr *PartialBatchError
	if errors.As(err, &partialErr) {
		return BatchInterrupted
	}
	var dispatchErr *DispatchFailureError
	if errors.As(err, &dispatchErr) {
		return DispatchFailure
	}
	return UnknownError
}

// Local validation errors can never succeed on retry with the same input.
func IsLocalValidation(err error) bool {
	switch StatusOf(err) {
	case InvalidAddressFormat, NetworkPrefixMismatch, UnsupportedAssetForRoute, InvalidAmount, AssetNotFound:
		return true
	}
	return false
}
