package xcmtransfer

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AmountBlockchain is a big integer amount in the chain's minimal unit, as the chain expects it.
type AmountBlockchain big.Int

// AmountHumanReadable is a decimal amount as a human expects it for readability.
type AmountHumanReadable decimal.Decimal

func (amount AmountBlockchain) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountBlockchain into *bit.Int
func (amount AmountBlockchain) Int() *big.Int {
	bigInt := big.Int(amount)
	return new(big.Int).Set(&bigInt)
}

func (amount AmountBlockchain) Sign() int {
	bigInt := big.Int(amount)
	return bigInt.Sign()
}

// SubChecked subtracts x, failing instead of going below zero.
func (amount *AmountBlockchain) SubChecked(x *AmountBlockchain) (AmountBlockchain, error) {
	diff := new(big.Int)
	diff.Set((*big.Int)(amount))
	diff.Sub(diff, x.Int())
	if diff.Sign() < 0 {
		return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("cannot subtract %s from %s", x.String(), amount.String())
	}
	return AmountBlockchain(*diff), nil
}

func (amount AmountBlockchain) IsPositive() bool {
	return amount.Sign() > 0
}

func (amount *AmountBlockchain) ToHuman(decimals int32) AmountHumanReadable {
	dec := decimal.NewFromBigInt(amount.Int(), -decimals)
	return AmountHumanReadable(dec)
}

// NewAmountBlockchainFromUint64 creates a new AmountBlockchain from a uint64
func NewAmountBlockchainFromUint64(u64 uint64) AmountBlockchain {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountBlockchain(*bigInt)
}

func NewAmountBlockchainFromBig(i *big.Int) AmountBlockchain {
	return AmountBlockchain(*new(big.Int).Set(i))
}

// NewAmountBlockchainFromDecimalStr parses a plain base-10 string of digits.
// Separators, signs, prefixes and exponents are rejected.
func NewAmountBlockchainFromDecimalStr(str string) (AmountBlockchain, error) {
	if str == "" {
		return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("empty amount")
	}
	for _, c := range str {
		if c < '0' || c > '9' {
			return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("amount %q must only contain decimal digits", str)
		}
	}
	bigInt, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("invalid amount %q", str)
	}
	return AmountBlockchain(*bigInt), nil
}

// NewAmountHumanReadableFromStr creates a new AmountHumanReadable from a string
func NewAmountHumanReadableFromStr(str string) (AmountHumanReadable, error) {
	decimal, err := decimal.NewFromString(str)
	return AmountHumanReadable(decimal), err
}

func (amount AmountHumanReadable) Decimal() decimal.Decimal {
	return decimal.Decimal(amount)
}

// ToBlockchain converts to the minimal denomination, e.g. 5 DOT with 10 decimals is 50_000_000_000.
// Amounts with more fractional digits than decimals, or negative amounts, are rejected.
func (amount AmountHumanReadable) ToBlockchain(decimals int32) (AmountBlockchain, error) {
	if amount.Decimal().IsNegative() {
		return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("amount %s is negative", amount)
	}
	factor := decimal.NewFromInt32(10).Pow(decimal.NewFromInt32(decimals))
	raised := amount.Decimal().Mul(factor)
	if !raised.IsInteger() {
		return NewAmountBlockchainFromUint64(0), xcerrors.InvalidAmountf("amount %s has more than %d decimal places", amount, decimals)
	}
	return AmountBlockchain(*raised.BigInt()), nil
}

func (amount AmountHumanReadable) String() string {
	return decimal.Decimal(amount).String()
}

var _ json.Marshaler = AmountHumanReadable{}
var _ json.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Marshaler = AmountHumanReadable{}

func (b AmountHumanReadable) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b *AmountHumanReadable) UnmarshalYAML(node *yaml.Node) error {
	value := node.Value
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "\"")
	value = strings.TrimSuffix(value, "\"")
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid decimal amount: %v", err)
	}
	*b = AmountHumanReadable(dec)
	return nil
}

func (b AmountHumanReadable) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountHumanReadable) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	decimal, err := decimal.NewFromString(str)
	if err != nil {
		return err
	}
	*b = AmountHumanReadable(decimal)
	return nil
}

var _ json.Marshaler = AmountBlockchain{}
var _ json.Unmarshaler = &AmountBlockchain{}
var _ yaml.Unmarshaler = &AmountBlockchain{}
var _ yaml.Marshaler = AmountBlockchain{}

func (b AmountBlockchain) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountBlockchain) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	var z big.Int
	_, ok := z.SetString(str, 0)
	if !ok {
		return fmt.Errorf("not a valid big integer: %s", p)
	}
	*b = AmountBlockchain(z)
	return nil
}

func (b AmountBlockchain) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b *AmountBlockchain) UnmarshalYAML(node *yaml.Node) error {
	var z big.Int
	_, ok := z.SetString(strings.TrimSpace(node.Value), 0)
	if !ok {
		return fmt.Errorf("not a valid big integer: %s", node.Value)
	}
	*b = AmountBlockchain(z)
	return nil
}
