package address

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	xc "github.com/cordialsys/xcmtransfer"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/vedhavyas/go-subkey/v2"
)

// Codec converts between SS58 addresses and raw account ids for one network prefix.
type Codec struct {
	prefix      uint16
	checkPrefix bool
}

func NewCodec(prefix uint16, checkPrefix bool) Codec {
	return Codec{prefix: prefix, checkPrefix: checkPrefix}
}

func NewCodecForChain(chain *xc.ChainConfig) Codec {
	return NewCodec(chain.SS58Prefix, chain.CheckPrefix)
}

func (c Codec) Prefix() uint16 {
	return c.prefix
}

// Decode returns the raw public key of an address.  A 0x prefixed 32 byte
// hex public key is also accepted and is not subject to prefix checking.
func (c Codec) Decode(addr xc.Address) (xc.AccountID, error) {
	var id xc.AccountID
	s := strings.TrimSpace(string(addr))
	if strings.HasPrefix(s, "0x") {
		bz, err := hex.DecodeString(s[2:])
		if err != nil || len(bz) != len(id) {
			return id, xcerrors.InvalidAddressFormatf("address %s is not a 32 byte hex public key", addr)
		}
		copy(id[:], bz)
		return id, nil
	}
	// base58.Decode returns nothing on any character outside of the alphabet
	if len(base58.Decode(s)) == 0 {
		return id, xcerrors.InvalidAddressFormatf("address %q is not valid base58", addr)
	}
	network, pub, err := subkey.SS58Decode(s)
	if err != nil {
		return id, xcerrors.InvalidAddressFormatf("address %s: %v", addr, err)
	}
	if len(pub) != len(id) {
		return id, xcerrors.InvalidAddressFormatf("address %s decodes to %d bytes, expecting %d", addr, len(pub), len(id))
	}
	if c.checkPrefix && network != c.prefix {
		return id, xcerrors.NetworkPrefixMismatchf("address %s is for network prefix %d, expecting %d", addr, network, c.prefix)
	}
	copy(id[:], pub)
	return id, nil
}

// Encode returns the SS58 address of a public key for this codec's prefix.
func (c Codec) Encode(id xc.AccountID) xc.Address {
	return xc.Address(subkey.SS58Encode(id[:], c.prefix))
}
