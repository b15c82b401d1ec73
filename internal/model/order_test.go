package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	side, err := ParseSide("LONG")
	require.NoError(t, err)
	assert.Equal(t, SideBuy, side)

	side, err = ParseSide("short")
	require.NoError(t, err)
	assert.Equal(t, SideSell, side)

	_, err = ParseSide("BUY")
	assert.Error(t, err)

	_, err = ParseSide("")
	assert.Error(t, err)
}

func TestParseOrderType(t *testing.T) {
	ot, err := ParseOrderType("market")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeMarket, ot)

	ot, err = ParseOrderType("LIMIT")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeLimit, ot)

	_, err = ParseOrderType("STOP")
	assert.Error(t, err)
}
