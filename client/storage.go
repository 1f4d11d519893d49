package client

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/xxhash"
	"golang.org/x/crypto/blake2b"
)

func twox128(data string) []byte {
	return xxhash.New128([]byte(data)).Sum(nil)
}

// StoragePrefix is the key prefix shared by every entry of pallet.item.
func StoragePrefix(pallet string, item string) types.StorageKey {
	key := append([]byte{}, twox128(pallet)...)
	return append(key, twox128(item)...)
}

func blake2_128Concat(data []byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return append(h.Sum(nil), data...)
}

// StorageMapKey builds the key of a map entry whose hashers are all Blake2_128Concat.
func StorageMapKey(pallet string, item string, args ...[]byte) types.StorageKey {
	key := StoragePrefix(pallet, item)
	for _, arg := range args {
		key = append(key, blake2_128Concat(arg)...)
	}
	return key
}
