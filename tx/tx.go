package tx

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic/extensions"
	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	"golang.org/x/crypto/blake2b"
)

// Tx is an extrinsic for one call, signed by one account.
type Tx struct {
	call        *call.Call
	extrinsic   extrinsic.DynamicExtrinsic
	meta        Metadata
	sender      types.MultiAddress
	genesisHash types.Hash
	rv          types.RuntimeVersion
	tip, nonce  uint64
	payload     *extrinsic.Payload
	signature   []byte
}

func NewTx(c *call.Call, sender xc.AccountID, input *TxInput) (*Tx, error) {
	encoded, err := c.Encode(&input.Meta)
	if err != nil {
		return nil, err
	}
	senderAddress, err := types.NewMultiAddressFromAccountID(sender[:])
	if err != nil {
		return nil, err
	}
	tx := &Tx{
		call:        c,
		extrinsic:   extrinsic.NewDynamicExtrinsic(&encoded),
		meta:        input.Meta,
		sender:      senderAddress,
		genesisHash: input.GenesisHash,
		rv:          input.Rv,
		tip:         input.Tip,
		nonce:       input.Nonce,
	}
	err = tx.build()
	return tx, err
}

func (tx *Tx) build() error {
	if tx.extrinsic.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v (isSigned: %v, type: %v)", tx.extrinsic.Version, tx.extrinsic.IsSigned(), tx.extrinsic.Type())
	}
	encodedMethod, err := codec.Encode(tx.extrinsic.Method)
	if err != nil {
		return fmt.Errorf("encode method: %w", err)
	}
	fieldValues := extrinsic.SignedFieldValues{}

	opts := []extrinsic.SigningOption{
		extrinsic.WithEra(types.ExtrinsicEra{IsImmortalEra: true}, tx.genesisHash),
		extrinsic.WithNonce(types.NewUCompactFromUInt(tx.nonce)),
		extrinsic.WithTip(types.NewUCompactFromUInt(tx.tip)),
		extrinsic.WithSpecVersion(tx.rv.SpecVersion),
		extrinsic.WithTransactionVersion(tx.rv.TransactionVersion),
		extrinsic.WithGenesisHash(tx.genesisHash),
		extrinsic.WithMetadataMode(extensions.CheckMetadataModeDisabled, extensions.CheckMetadataHash{Hash: types.NewEmptyOption[types.H256]()}),
	}
	for _, opt := range opts {
		opt(fieldValues)
	}

	payload, err := CreatePayload(&tx.meta, encodedMethod)
	if err != nil {
		return fmt.Errorf("creating payload: %w", err)
	}
	err = payload.MutateSignedFields(fieldValues)
	if err != nil {
		return fmt.Errorf("mutate signed fields: %w", err)
	}
	tx.payload = payload
	return nil
}

func (tx *Tx) Call() *call.Call {
	return tx.call
}

func (tx *Tx) Nonce() uint64 {
	return tx.nonce
}

func HashSerialized(serialized []byte) []byte {
	hash := blake2b.Sum256(serialized)
	return hash[:]
}

// Hash is the 0x prefixed extrinsic hash, as shown by explorers.
func (tx *Tx) Hash() string {
	ser, err := tx.Serialize()
	if err != nil {
		return ""
	}
	return codec.HexEncodeToString(HashSerialized(ser))
}

// Sighash returns the payload to sign.
func (tx *Tx) Sighash() ([]byte, error) {
	b, err := codec.Encode(tx.payload)
	if err != nil {
		return nil, err
	}
	// if data is longer than 256 bytes, must hash it first
	if len(b) > 256 {
		h := blake2b.Sum256(b)
		b = h[:]
	}
	return b, nil
}

// SetSignature attaches an sr25519 signature over Sighash.
func (tx *Tx) SetSignature(signature []byte) error {
	if len(signature) != 64 {
		return fmt.Errorf("expected a 64 byte signature, got %d bytes", len(signature))
	}
	tx.extrinsic.Signature = &extrinsic.Signature{
		Signer: tx.sender,
		Signature: types.MultiSignature{
			IsSr25519: true,
			AsSr25519: types.NewSignature(signature),
		},
		SignedFields: tx.payload.SignedFields,
	}
	tx.extrinsic.Version |= types.ExtrinsicBitSigned
	tx.signature = signature
	return nil
}

func (tx *Tx) IsSigned() bool {
	return tx.signature != nil
}

func (tx *Tx) Serialize() ([]byte, error) {
	return codec.Encode(tx.extrinsic)
}

// Sign signs the tx with signer, who must be the sender.
func Sign(tx *Tx, signer Signer) error {
	if !tx.sender.IsID || xc.AccountID(tx.sender.AsID) != signer.AccountID() {
		return fmt.Errorf("signer %s is not the sender of the transaction", signer.AccountID())
	}
	sighash, err := tx.Sighash()
	if err != nil {
		return err
	}
	signature, err := signer.Sign(sighash)
	if err != nil {
		return err
	}
	return tx.SetSignature(signature)
}
