package tx

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic/extensions"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/sirupsen/logrus"
)

type CallMeta struct {
	Name         string `json:"name"`
	SectionIndex uint8  `json:"section"`
	MethodIndex  uint8  `json:"method"`
}

// Metadata is the part of a chain's metadata needed to encode and sign the
// calls this module builds.
type Metadata struct {
	Calls            []*CallMeta                      `json:"calls"`
	SignedExtensions []extensions.SignedExtensionName `json:"signed_extensions"`
}

var _ call.IndexResolver = &Metadata{}

func (m *Metadata) FindCallIndex(name string) (types.CallIndex, error) {
	for _, c := range m.Calls {
		if c.Name == name {
			return types.CallIndex{
				SectionIndex: c.SectionIndex,
				MethodIndex:  c.MethodIndex,
			}, nil
		}
	}
	return types.CallIndex{}, fmt.Errorf("chain does not support call %s", name)
}

func (m *Metadata) Supports(method call.Method) bool {
	_, err := m.FindCallIndex(string(method))
	return err == nil
}

// ParseMeta keeps only the call indexes of known methods, so the full metadata
// does not need to be carried around.
func ParseMeta(meta *types.Metadata) (Metadata, error) {
	newMeta := Metadata{}
	for _, method := range call.KnownMethods {
		index, err := meta.FindCallIndex(string(method))
		if err != nil {
			logrus.WithField("name", method).Debug("chain does not support call")
			continue
		}
		newMeta.Calls = append(newMeta.Calls, &CallMeta{
			Name:         string(method),
			SectionIndex: index.SectionIndex,
			MethodIndex:  index.MethodIndex,
		})
	}
	for _, signedExtension := range meta.AsMetadataV14.Extrinsic.SignedExtensions {
		signedExtensionType, ok := meta.AsMetadataV14.EfficientLookup[signedExtension.Type.Int64()]
		if !ok {
			return newMeta, fmt.Errorf("signed extension type '%d' is not defined", signedExtension.Type.Int64())
		}
		signedExtensionName := extensions.SignedExtensionName(signedExtensionType.Path[len(signedExtensionType.Path)-1])
		newMeta.SignedExtensions = append(newMeta.SignedExtensions, signedExtensionName)
	}
	return newMeta, nil
}

// Extensions without signed data on the parachains we send from.
var LocalPayloadMutatorFns = map[extensions.SignedExtensionName]extrinsic.PayloadMutatorFn{
	"CheckEVMEffectiveGas": func(payload *extrinsic.Payload) {},
	"ChargeAssetTxPayment": func(payload *extrinsic.Payload) {},
}

// CreatePayload adds the signed fields of every extension the chain declares.
func CreatePayload(meta *Metadata, encodedCall []byte) (*extrinsic.Payload, error) {
	payload := &extrinsic.Payload{
		EncodedCall: encodedCall,
	}

	for _, signedExtension := range meta.SignedExtensions {
		payloadMutatorFn, ok := extrinsic.PayloadMutatorFns[signedExtension]
		if !ok {
			payloadMutatorFn, ok = LocalPayloadMutatorFns[signedExtension]
			if !ok {
				logrus.WithFields(logrus.Fields{
					"extension": signedExtension,
				}).Warn("signed extension is not supported, transaction may not be accepted")
				continue
			}
		}
		payloadMutatorFn(payload)
	}

	return payload, nil
}
