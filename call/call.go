package call

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// Method is a "<Pallet>.<method>" name as found in chain metadata.
type Method string

const (
	PolkadotXcmReserveTransferAssets Method = "PolkadotXcm.reserve_transfer_assets"
	PolkadotXcmReserveWithdrawAssets Method = "PolkadotXcm.reserve_withdraw_assets"
	XcmPalletReserveTransferAssets   Method = "XcmPallet.reserve_transfer_assets"
	XTokensTransfer                  Method = "XTokens.transfer"
	UtilityBatchAll                  Method = "Utility.batch_all"
	SudoSudo                         Method = "Sudo.sudo"
	SudoSudoAs                       Method = "Sudo.sudo_as"
	AssetsMint                       Method = "Assets.mint"
)

// Every method this module knows how to build.  Only these call indexes are
// kept from chain metadata.
var KnownMethods = []Method{
	PolkadotXcmReserveTransferAssets,
	PolkadotXcmReserveWithdrawAssets,
	XcmPalletReserveTransferAssets,
	XTokensTransfer,
	UtilityBatchAll,
	SudoSudo,
	SudoSudoAs,
	AssetsMint,
}

// IsKnown reports whether calls to m can be built and indexed.
func IsKnown(m Method) bool {
	for _, known := range KnownMethods {
		if known == m {
			return true
		}
	}
	return false
}

func NewMethod(pallet string, method string) Method {
	return Method(pallet + "." + method)
}

func (m Method) Pallet() string {
	pallet, _, _ := strings.Cut(string(m), ".")
	return pallet
}

func (m Method) Name() string {
	_, name, _ := strings.Cut(string(m), ".")
	return name
}

type Arg struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

func NewArg(name string, value interface{}) Arg {
	return Arg{Name: name, Value: value}
}

// Call is an unsigned (pallet, method, args) descriptor.  It is built once and
// never changed; args are encoded in order.
type Call struct {
	method Method
	args   []Arg
}

func New(method Method, args ...Arg) *Call {
	return &Call{
		method: method,
		args:   append([]Arg{}, args...),
	}
}

func (c *Call) Method() Method {
	return c.method
}

func (c *Call) Args() []Arg {
	return append([]Arg{}, c.args...)
}

func (c *Call) Arg(name string) (interface{}, bool) {
	for _, arg := range c.args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Inner returns the calls nested in this call's arguments, e.g. the calls of a batch.
func (c *Call) Inner() []*Call {
	inner := []*Call{}
	for _, arg := range c.args {
		switch v := arg.Value.(type) {
		case *Call:
			inner = append(inner, v)
		case []*Call:
			inner = append(inner, v...)
		}
	}
	return inner
}

type IndexResolver interface {
	FindCallIndex(name string) (types.CallIndex, error)
}

// Encode resolves the call index and SCALE encodes the arguments.  Nested
// calls are encoded as runtime calls.
func (c *Call) Encode(resolver IndexResolver) (types.Call, error) {
	index, err := resolver.FindCallIndex(string(c.method))
	if err != nil {
		return types.Call{}, err
	}

	var a []byte
	for _, arg := range c.args {
		value, err := c.resolveNested(resolver, arg.Value)
		if err != nil {
			return types.Call{}, fmt.Errorf("%s argument %s: %w", c.method, arg.Name, err)
		}
		e, err := codec.Encode(value)
		if err != nil {
			return types.Call{}, fmt.Errorf("%s argument %s: %w", c.method, arg.Name, err)
		}
		a = append(a, e...)
	}

	return types.Call{CallIndex: index, Args: a}, nil
}

func (c *Call) resolveNested(resolver IndexResolver, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *Call:
		return v.Encode(resolver)
	case []*Call:
		encoded := make([]types.Call, len(v))
		for i, inner := range v {
			e, err := inner.Encode(resolver)
			if err != nil {
				return nil, err
			}
			encoded[i] = e
		}
		return encoded, nil
	}
	return value, nil
}

func (c *Call) EncodeToBytes(resolver IndexResolver) ([]byte, error) {
	encoded, err := c.Encode(resolver)
	if err != nil {
		return nil, err
	}
	return codec.Encode(encoded)
}

type callJson struct {
	Pallet string `json:"pallet"`
	Method string `json:"method"`
	Args   []Arg  `json:"args"`
}

func (c *Call) MarshalJSON() ([]byte, error) {
	args := c.args
	if args == nil {
		args = []Arg{}
	}
	return json.Marshal(callJson{c.method.Pallet(), c.method.Name(), args})
}

func (c *Call) String() string {
	return string(c.method)
}
