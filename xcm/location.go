package xcm

import (
	"encoding/json"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// MultiLocation is a location relative to the sender: go up Parents levels,
// then follow the Interior path down.
type MultiLocation struct {
	Parents  uint8
	Interior Junctions
}

func Here() MultiLocation {
	return MultiLocation{}
}

func ParentLocation() MultiLocation {
	return MultiLocation{Parents: 1}
}

// IsHere is true for the location of the sending chain itself.
func (l MultiLocation) IsHere() bool {
	return l.Parents == 0 && l.Interior.IsHere()
}

func (l MultiLocation) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(l.Parents); err != nil {
		return err
	}
	return encoder.Encode(l.Interior)
}

func (l MultiLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Parents  uint8     `json:"parents"`
		Interior Junctions `json:"interior"`
	}{l.Parents, l.Interior})
}

// Version is the XCM version tag used to wrap locations and assets.
type Version uint8

const V1 Version = 1

// VersionedMultiLocation wraps a location with its XCM version tag.
type VersionedMultiLocation struct {
	Version  Version
	Location MultiLocation
}

func NewVersionedMultiLocation(location MultiLocation) VersionedMultiLocation {
	return VersionedMultiLocation{Version: V1, Location: location}
}

func (v VersionedMultiLocation) Encode(encoder scale.Encoder) error {
	if v.Version != V1 {
		return fmt.Errorf("unsupported xcm version %d", v.Version)
	}
	if err := encoder.PushByte(byte(v.Version)); err != nil {
		return err
	}
	return encoder.Encode(v.Location)
}

func (v VersionedMultiLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]MultiLocation{fmt.Sprintf("V%d", v.Version): v.Location})
}
