package tx

import (
	"fmt"
	"strings"

	sr25519 "github.com/ChainSafe/go-schnorrkel"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/gtank/merlin"
	"github.com/vedhavyas/go-subkey/v2"
	subkeysr25519 "github.com/vedhavyas/go-subkey/v2/sr25519"
)

type Signer interface {
	AccountID() xc.AccountID
	Sign(payload []byte) ([]byte, error)
}

// NewSigner accepts a 0x prefixed 32 byte sr25519 mini secret, a mnemonic,
// or a dev URI such as //Alice.
func NewSigner(secret string) (Signer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("empty signing secret")
	}
	if strings.HasPrefix(secret, "0x") && !strings.Contains(secret, "/") {
		return NewSeedSigner(secret)
	}
	return NewKeyringSigner(secret)
}

func signingContext(msg []byte) *merlin.Transcript {
	return sr25519.NewSigningContext([]byte("substrate"), msg)
}

// SeedSigner signs with a raw sr25519 mini secret.
type SeedSigner struct {
	key       *sr25519.SecretKey
	accountID xc.AccountID
}

var _ Signer = &SeedSigner{}

func NewSeedSigner(seedHex string) (*SeedSigner, error) {
	seed, err := codec.HexDecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(seed) != 32 {
		return nil, fmt.Errorf("expected private key seed to be 32 bytes, got %d bytes", len(seed))
	}
	secret := [32]byte{}
	copy(secret[:], seed)
	ms, err := sr25519.NewMiniSecretKeyFromRaw(secret)
	if err != nil {
		return nil, err
	}
	key := ms.ExpandEd25519()
	public, err := key.Public()
	if err != nil {
		return nil, err
	}
	return &SeedSigner{key, xc.AccountID(public.Encode())}, nil
}

func (s *SeedSigner) AccountID() xc.AccountID {
	return s.accountID
}

func (s *SeedSigner) Sign(payload []byte) ([]byte, error) {
	sig, err := s.key.Sign(signingContext(payload))
	if err != nil {
		return nil, err
	}
	sigEncoded := sig.Encode()
	return sigEncoded[:], nil
}

// KeyringSigner derives an sr25519 key the way subkey does.
type KeyringSigner struct {
	keypair subkey.KeyPair
}

var _ Signer = &KeyringSigner{}

func NewKeyringSigner(uri string) (*KeyringSigner, error) {
	keypair, err := subkey.DeriveKeyPair(subkeysr25519.Scheme{}, uri)
	if err != nil {
		return nil, fmt.Errorf("could not derive signing key: %w", err)
	}
	return &KeyringSigner{keypair}, nil
}

func (s *KeyringSigner) AccountID() xc.AccountID {
	var id xc.AccountID
	copy(id[:], s.keypair.AccountID())
	return id
}

func (s *KeyringSigner) Sign(payload []byte) ([]byte, error) {
	return s.keypair.Sign(payload)
}
