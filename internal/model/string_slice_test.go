package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_RoundTrip(t *testing.T) {
	v, err := StringSlice{"Go", "SQL", "Docker"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "Go,SQL,Docker", v)

	var s StringSlice
	require.NoError(t, s.Scan("Go,SQL,Docker"))
	assert.Equal(t, StringSlice{"Go", "SQL", "Docker"}, s)
}

func TestStringSlice_Empty(t *testing.T) {
	v, err := StringSlice{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	var s StringSlice
	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
}

func TestStringSlice_RejectsCommas(t *testing.T) {
	_, err := StringSlice{"Go, the language"}.Value()
	assert.Error(t, err)
}

func TestStringSlice_ScanBytes(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan([]byte("a,b")))
	assert.Equal(t, StringSlice{"a", "b"}, s)
}
