package client

import (
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/registry"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/sirupsen/logrus"
)

// An event is typically identified by something like "<module>.<event-id>", e.g. "Utility.BatchInterrupted"
type EventI interface {
	// Or may be called "pallet"
	GetModule() string
	// Or may just be the "name" or id
	GetId() string
	// GetParam looks up a field by name, falling back to its position.
	GetParam(name string, index int) (interface{}, bool)
}

type Event struct {
	Module string
	Id     string
	Raw    *parser.Event
}

var _ EventI = &Event{}

func NewEvent(raw *parser.Event) *Event {
	module, id, _ := strings.Cut(raw.Name, ".")
	return &Event{module, id, raw}
}

func (ev *Event) GetModule() string {
	return ev.Module
}

func (ev *Event) GetId() string {
	return ev.Id
}

func (ev *Event) GetParam(name string, index int) (interface{}, bool) {
	for _, field := range ev.Raw.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	if index >= 0 && index < len(ev.Raw.Fields) {
		return ev.Raw.Fields[index].Value, true
	}
	return nil, false
}

// Variant names of sp_runtime::DispatchError, by index.
var dispatchErrorKinds = []string{
	"Other",
	"CannotLookup",
	"BadOrigin",
	"Module",
	"ConsumerRemaining",
	"NoProviders",
	"TooManyConsumers",
	"Token",
	"Arithmetic",
	"Transactional",
	"Exhausted",
	"Corruption",
	"Unavailable",
	"RootNotAllowed",
}

type errorKey struct {
	pallet uint8
	error  uint8
}

type errorName struct {
	module string
	name   string
}

// ErrorRegistry names module errors by their pallet and error index.
type ErrorRegistry struct {
	names map[errorKey]errorName
}

func NewErrorRegistry() *ErrorRegistry {
	return &ErrorRegistry{names: map[errorKey]errorName{}}
}

// ErrorRegistryFromMetadata reads the error enum of every pallet in the metadata.
func ErrorRegistryFromMetadata(meta *types.Metadata) *ErrorRegistry {
	reg := NewErrorRegistry()
	if meta == nil || meta.Version != 14 {
		return reg
	}
	for _, pallet := range meta.AsMetadataV14.Pallets {
		if !pallet.HasErrors {
			continue
		}
		errorsType, ok := meta.AsMetadataV14.EfficientLookup[pallet.Errors.Type.Int64()]
		if !ok || !errorsType.Def.IsVariant {
			continue
		}
		for _, variant := range errorsType.Def.Variant.Variants {
			reg.Add(uint8(pallet.Index), uint8(variant.Index), string(pallet.Name), string(variant.Name))
		}
	}
	return reg
}

func (reg *ErrorRegistry) Add(palletIndex uint8, errorIndex uint8, module string, name string) {
	reg.names[errorKey{palletIndex, errorIndex}] = errorName{module, name}
}

// Resolve names a module error, or reports the raw indexes when it is not registered.
func (reg *ErrorRegistry) Resolve(palletIndex uint8, errorIndex uint8) *xcerrors.DispatchFailureError {
	if reg != nil {
		if name, ok := reg.names[errorKey{palletIndex, errorIndex}]; ok {
			return xcerrors.NewDispatchFailure(name.module, name.name)
		}
	}
	return xcerrors.NewDispatchFailure("", fmt.Sprintf("Module(%d, %d)", palletIndex, errorIndex))
}

// DispatchError converts a decoded DispatchError value into a failure.
func (reg *ErrorRegistry) DispatchError(value interface{}) *xcerrors.DispatchFailureError {
	if palletIndex, errorIndex, ok := findModuleError(value); ok {
		return reg.Resolve(palletIndex, errorIndex)
	}
	if kind, ok := findKind(value); ok {
		return xcerrors.NewDispatchFailure("", kind)
	}
	logrus.WithField("type", fmt.Sprintf("%T", value)).Debug("could not decode dispatch error")
	return xcerrors.NewDispatchFailure("", dispatchErrorKinds[0])
}

func fieldsOf(value interface{}) (registry.DecodedFields, bool) {
	switch value := value.(type) {
	case registry.DecodedFields:
		return value, true
	case *registry.DecodedField:
		return registry.DecodedFields{value}, true
	case registry.DecodedField:
		return registry.DecodedFields{&value}, true
	}
	return nil, false
}

// findModuleError searches for the {index, error} pair of a module error.
func findModuleError(value interface{}) (uint8, uint8, bool) {
	fields, ok := fieldsOf(value)
	if !ok {
		return 0, 0, false
	}
	var palletIndex, errorIndex uint8
	var hasIndex, hasError bool
	for _, field := range fields {
		switch field.Name {
		case "index":
			palletIndex, hasIndex = toUint8(field.Value)
		case "error":
			errorIndex, hasError = toUint8(field.Value)
		}
	}
	if hasIndex && hasError {
		return palletIndex, errorIndex, true
	}
	for _, field := range fields {
		if p, e, ok := findModuleError(field.Value); ok {
			return p, e, true
		}
	}
	return 0, 0, false
}

func findKind(value interface{}) (string, bool) {
	if index, ok := toUint8(value); ok {
		if int(index) < len(dispatchErrorKinds) {
			return dispatchErrorKinds[index], true
		}
		return "", false
	}
	fields, ok := fieldsOf(value)
	if !ok {
		return "", false
	}
	for _, field := range fields {
		for _, kind := range dispatchErrorKinds {
			if field.Name == kind {
				return kind, true
			}
		}
	}
	for _, field := range fields {
		if kind, ok := findKind(field.Value); ok {
			return kind, true
		}
	}
	return "", false
}

// toUint8 reads a small integer; for byte arrays (the newer [u8; 4] module
// error) the first byte is used.
func toUint8(value interface{}) (uint8, bool) {
	switch value := value.(type) {
	case types.U8:
		return uint8(value), true
	case uint8:
		return value, true
	case types.U32:
		return uint8(value), true
	case []interface{}:
		if len(value) > 0 {
			return toUint8(value[0])
		}
	case []types.U8:
		if len(value) > 0 {
			return uint8(value[0]), true
		}
	case [4]types.U8:
		return uint8(value[0]), true
	case []byte:
		if len(value) > 0 {
			return value[0], true
		}
	}
	return 0, false
}

func toUint32(value interface{}) (uint32, bool) {
	switch value := value.(type) {
	case types.U32:
		return uint32(value), true
	case uint32:
		return value, true
	case types.U8:
		return uint32(value), true
	case types.U16:
		return uint32(value), true
	}
	return 0, false
}

func isEvent(ev EventI, module string, id string) bool {
	return strings.EqualFold(ev.GetModule(), module) && strings.EqualFold(ev.GetId(), id)
}

// ParseDispatchOutcome inspects the events of one extrinsic. It returns nil
// when the extrinsic dispatched successfully, a *DispatchFailureError when it
// failed, and a *BatchInterruptedError when an inner call of a batch failed.
//
// Sudo results are counted by position. A single failed sudo is a plain
// dispatch failure; when several sudo calls ran inside one batch, failures
// are reported as a *PartialBatchError since the other calls still applied.
func ParseDispatchOutcome(events []EventI, reg *ErrorRegistry) error {
	var sudoCount uint32
	var sudoFailures []xcerrors.CallFailure
	for _, ev := range events {
		switch {
		case isEvent(ev, "System", "ExtrinsicFailed"):
			value, ok := ev.GetParam("dispatch_error", 0)
			if !ok {
				return xcerrors.NewDispatchFailure("", dispatchErrorKinds[0])
			}
			return reg.DispatchError(value)

		case isEvent(ev, "Utility", "BatchInterrupted"):
			value, _ := ev.GetParam("error", 1)
			cause := reg.DispatchError(value)
			rawIndex, _ := ev.GetParam("index", 0)
			index, ok := toUint32(rawIndex)
			if !ok {
				logrus.WithField("type", fmt.Sprintf("%T", rawIndex)).Warn("unexpected batch index type")
				return xcerrors.NewBatchInterruptedUnknownIndex(cause)
			}
			return xcerrors.NewBatchInterrupted(index, cause)

		case isEvent(ev, "Sudo", "Sudid"), isEvent(ev, "Sudo", "SudoAsDone"):
			position := sudoCount
			sudoCount++
			value, ok := ev.GetParam("sudo_result", 0)
			if !ok {
				continue
			}
			if failed, cause := sudoFailed(value, reg); failed {
				sudoFailures = append(sudoFailures, xcerrors.CallFailure{Index: position, Cause: cause})
			}
		}
	}
	switch {
	case len(sudoFailures) == 0:
		return nil
	case sudoCount == 1:
		return sudoFailures[0].Cause
	default:
		return xcerrors.NewPartialBatch(sudoCount, sudoFailures)
	}
}

// sudoFailed reads a Result<(), DispatchError>.
func sudoFailed(value interface{}, reg *ErrorRegistry) (bool, *xcerrors.DispatchFailureError) {
	fields, ok := fieldsOf(value)
	if !ok {
		return false, nil
	}
	for _, field := range fields {
		if field.Name == "Err" {
			return true, reg.DispatchError(field.Value)
		}
	}
	if p, e, ok := findModuleError(value); ok {
		return true, reg.Resolve(p, e)
	}
	for _, field := range fields {
		if failed, cause := sudoFailed(field.Value, reg); failed {
			return true, cause
		}
	}
	return false, nil
}
