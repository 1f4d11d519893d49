package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	xc "github.com/cordialsys/xcmtransfer"
	"github.com/cordialsys/xcmtransfer/call"
	"github.com/cordialsys/xcmtransfer/pkg/hex"
)

// Record is one beneficiary of a bulk operation.  Amount is a plain decimal
// string in the chain's minimal unit.
type Record struct {
	Account xc.Address `json:"account"`
	Amount  string     `json:"amount"`
}

func ParseRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid records: %w", err)
	}
	return records, nil
}

func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRecords(f)
}

type artifact struct {
	Pallet  string     `json:"pallet"`
	Method  string     `json:"method"`
	Args    []call.Arg `json:"args"`
	Encoded hex.Hex    `json:"encoded,omitempty"`
}

// WriteArtifact writes the built batches as JSON for review before they are
// submitted.  With a resolver, each entry also carries its encoded call.
func WriteArtifact(w io.Writer, batches []*call.Call, resolver call.IndexResolver) error {
	entries := make([]artifact, len(batches))
	for i, b := range batches {
		entries[i] = artifact{
			Pallet: b.Method().Pallet(),
			Method: b.Method().Name(),
			Args:   b.Args(),
		}
		if resolver != nil {
			encoded, err := b.EncodeToBytes(resolver)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			entries[i].Encoded = encoded
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func SaveArtifact(path string, batches []*call.Call, resolver call.IndexResolver) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteArtifact(f, batches, resolver); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
