package hex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type object struct {
	Hex Hex `yaml:"hex"`
}

func TestHex(t *testing.T) {
	var err error
	hex := Hex([]byte{01, 02, 03, 04})
	require.Equal(t, "0x01020304", hex.String())
	require.Equal(t, []byte{01, 02, 03, 04}, hex.Bytes())

	hex2 := Hex{}
	err = json.Unmarshal([]byte(`"01020304"`), &hex2)
	require.NoError(t, err)
	require.Equal(t, []byte{01, 02, 03, 04}, hex2.Bytes())

	hex3 := Hex{}
	err = json.Unmarshal([]byte(`"0x01020304"`), &hex3)
	require.NoError(t, err)
	require.Equal(t, []byte{01, 02, 03, 04}, hex3.Bytes())

	bz, err := json.Marshal(hex3)
	require.NoError(t, err)
	require.Equal(t, `"0x01020304"`, string(bz))

	hex4 := object{}
	err = yaml.Unmarshal([]byte(`hex: "0x01020304"`), &hex4)
	require.NoError(t, err)
	require.Equal(t, []byte{01, 02, 03, 04}, hex4.Hex.Bytes())

	bz, err = yaml.Marshal(object{Hex: hex4.Hex})
	require.NoError(t, err)
	require.Contains(t, string(bz), "0x01020304")
	hex5 := object{}
	require.NoError(t, yaml.Unmarshal(bz, &hex5))
	require.Equal(t, hex4, hex5)

	_, err = Decode("0xzz")
	require.Error(t, err)
}
