package address_test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/address"
	xcerrors "github.com/cordialsys/xcmtransfer/errors"
	"github.com/stretchr/testify/require"
)

const alicePub = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func mustAccount(t *testing.T, s string) xc.AccountID {
	bz, err := hex.DecodeString(s)
	require.NoError(t, err)
	var id xc.AccountID
	copy(id[:], bz)
	return id
}

func TestEncode(t *testing.T) {
	require := require.New(t)
	codec := address.NewCodec(0, true)
	id := mustAccount(t, "192c3c7e5789b461fbf1c7f614ba5eed0b22efc507cda60a5e7fda8e046bcdce")
	require.Equal(xc.Address("1a1LcBX6hGPKg5aQ6DXZpAHCCzWjckhea4sz3P1PvL3oc4F"), codec.Encode(id))

	alice := mustAccount(t, alicePub)
	require.Equal(xc.Address("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"), address.NewCodec(42, true).Encode(alice))
	require.Equal(xc.Address("15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"), codec.Encode(alice))
}

func TestDecode(t *testing.T) {
	require := require.New(t)
	alice := mustAccount(t, alicePub)

	for _, tc := range []struct {
		name   string
		codec  address.Codec
		addr   xc.Address
		status xcerrors.Status
	}{
		{"generic", address.NewCodec(42, true), "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", ""},
		{"polkadot", address.NewCodec(0, true), "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5", ""},
		{"hex", address.NewCodec(0, true), xc.Address("0x" + alicePub), ""},
		{"unchecked prefix", address.NewCodec(0, false), "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", ""},
		{"prefix mismatch", address.NewCodec(0, true), "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", xcerrors.NetworkPrefixMismatch},
		{"bad checksum", address.NewCodec(42, true), "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ", xcerrors.InvalidAddressFormat},
		{"bad alphabet", address.NewCodec(42, true), "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKut0l", xcerrors.InvalidAddressFormat},
		{"short hex", address.NewCodec(42, true), "0x1234", xcerrors.InvalidAddressFormat},
		{"empty", address.NewCodec(42, true), "", xcerrors.InvalidAddressFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			id, err := tc.codec.Decode(tc.addr)
			if tc.status != "" {
				require.Error(err)
				require.Equal(tc.status, xcerrors.StatusOf(err))
				return
			}
			require.NoError(err)
			require.Equal(alice, id)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)
	for _, prefix := range []uint16{0, 2, 5, 42, 1000} {
		codec := address.NewCodec(prefix, true)
		for i := 0; i < 20; i++ {
			var id xc.AccountID
			_, err := rand.Read(id[:])
			require.NoError(err)

			addr := codec.Encode(id)
			decoded, err := codec.Decode(addr)
			require.NoError(err)
			require.Equal(id, decoded)
			require.Equal(addr, codec.Encode(decoded))
		}
	}
}
