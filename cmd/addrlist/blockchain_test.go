package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatestHeight(t *testing.T) {
	// chain with the genesis block only
	require.EqualValues(t, 0, latestHeight(1))
	require.EqualValues(t, 99, latestHeight(100))
}
