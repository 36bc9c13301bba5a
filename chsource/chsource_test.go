package chsource

import (
	"testing"

	"github.com/invertedv/chutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load itself is exercised only against a live chutils.Input (a
// ClickHouse connection or file reader), which this package's tests don't
// stand up; toFloat is the pure conversion logic Load depends on and is
// fully covered here.

func TestToFloatNumericKinds(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{float64(1.5), 1.5},
		{float32(2.5), 2.5},
		{int(3), 3},
		{int32(4), 4},
		{int64(5), 5},
		{"6.25", 6.25},
	}

	for _, c := range cases {
		got, err := toFloat(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestToFloatRejectsNonNumericString(t *testing.T) {
	_, err := toFloat("not-a-number")
	require.Error(t, err)
}

func TestToFloatRejectsUnsupportedType(t *testing.T) {
	_, err := toFloat(struct{}{})
	require.Error(t, err)
}

func TestLoadRejectsNilReader(t *testing.T) {
	_, err := Load(nil, []string{"x"})
	require.Error(t, err)
}

// stubInput is a non-nil chutils.Input whose methods are never reached:
// Load rejects an empty field list before touching the reader.
type stubInput struct{ chutils.Input }

func TestLoadRejectsEmptyFieldList(t *testing.T) {
	_, err := Load(stubInput{}, nil)
	require.Error(t, err)
}
