package safe_map_test

import (
	"encoding/json"
	"testing"

	"github.com/cordialsys/xcmtransfer/pkg/safe_map"
	"github.com/stretchr/testify/require"
)

func TestOrdering(t *testing.T) {
	require := require.New(t)
	m := safe_map.New[int]()
	m.Set("0x03", 3)
	m.Set("0x01", 1)
	m.Set("0x02", 2)

	require.Equal([]string{"0x01", "0x02", "0x03"}, m.Keys())
	require.Equal([]int{1, 2, 3}, m.Values())
	require.True(m.Has("0x02"))
	require.False(m.Has("0x04"))
}

func TestOverwrite(t *testing.T) {
	require := require.New(t)
	m := safe_map.New[string]()
	m.Set("a", "first")
	m.Set("a", "second")
	require.Equal(1, m.Len())
	v, ok := m.Get("a")
	require.True(ok)
	require.Equal("second", v)
}

func TestClone(t *testing.T) {
	require := require.New(t)
	m := safe_map.New[int]()
	m.Set("a", 1)
	clone := m.Clone()
	clone.Set("b", 2)
	require.Equal(1, m.Len())
	require.Equal(2, clone.Len())
}

func TestMarshalJSON(t *testing.T) {
	require := require.New(t)
	m := safe_map.New[int]()
	require.Equal("{}", mustJSON(t, m))
	m.Set("b", 2)
	m.Set("a", 1)
	require.JSONEq(`{"a":1,"b":2}`, mustJSON(t, m))
}

func mustJSON(t *testing.T, v any) string {
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return string(bz)
}
