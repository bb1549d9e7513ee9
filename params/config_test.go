package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveChainID(t *testing.T) {
	require.Equal(t, big.NewInt(1337), ResolveChainID(TestChainConfig, big.NewInt(5)))
	require.Equal(t, big.NewInt(5), ResolveChainID(nil, big.NewInt(5)))
	require.Equal(t, DefaultChainID, ResolveChainID(nil, nil))
	require.Equal(t, DefaultChainID, ResolveChainID(&ChainConfig{}, nil))

	// The result must be an independent copy.
	id := ResolveChainID(TestChainConfig, nil)
	id.SetUint64(9)
	require.Equal(t, big.NewInt(1337), TestChainConfig.ChainID)
}

func TestRules(t *testing.T) {
	rules := TestChainConfig.Rules()
	require.Equal(t, big.NewInt(1337), rules.ChainID)
	require.True(t, rules.IsReplayProtected)

	rules.ChainID.SetUint64(2)
	require.Equal(t, big.NewInt(1337), TestChainConfig.ChainID)

	var nilId ChainConfig
	require.Equal(t, new(big.Int), nilId.Rules().ChainID)
}
