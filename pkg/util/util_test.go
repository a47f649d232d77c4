package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	orig := errors.New("connection refused")
	err := WrapErrorf(orig, ErrFetchGeometry, "failed to load geometry from %s", "http://localhost/indoor.geojson")

	assert.ErrorIs(t, err, ErrFetchGeometry)
	assert.ErrorIs(t, err, orig)
	assert.NotErrorIs(t, err, ErrParseGeometry)
	assert.Equal(t, "failed to load geometry from http://localhost/indoor.geojson: connection refused", err.Error())

	wrapped := fmt.Errorf("reload: %w", err)
	assert.ErrorIs(t, wrapped, ErrFetchGeometry)

	var typed *Error
	require.True(t, errors.As(wrapped, &typed))
	assert.Equal(t, ErrFetchGeometry, typed.Code())

	plain := NewErrorf(ErrGraphNotLoaded, "no indoor graph loaded")
	assert.Equal(t, "no indoor graph loaded", plain.Error())
	assert.ErrorIs(t, plain, ErrGraphNotLoaded)
}

func TestFloatHelpers(t *testing.T) {
	assert.Equal(t, 110.378, RoundFloat(110.37804, 3))
	assert.Equal(t, 5, CountDecimalPlacesF64(-7.77131))
	assert.True(t, IsFinite(1))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
	assert.Equal(t, []int{3, 2, 1}, ReverseG([]int{1, 2, 3}))
	assert.InDelta(t, math.Pi, DegreeToRadians(180), 1e-12)
	assert.InDelta(t, 180, RadiansToDegree(math.Pi), 1e-12)
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("3 2 -1\r\n0 0\nlast"))

	testCases := []string{"3 2 -1", "0 0", "last"}
	for _, want := range testCases {
		got, err := ReadLine(br)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ReadLine(br)
	assert.ErrorIs(t, err, io.EOF)
}
