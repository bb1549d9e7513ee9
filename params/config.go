package params

import "math/big"

// DefaultChainID is used when neither a chain config nor a candidate id is
// supplied.
var DefaultChainID = big.NewInt(1)

type ChainConfig struct {
	ChainID *big.Int `json:"chainId"` // chainId identifies the current chain and is used for replay protection

	// SponsorReplayProtection pins sponsored-transaction signatures to the
	// chain id (the chainId*2 + 35/36 encoding family).
	SponsorReplayProtection bool `json:"sponsorReplayProtection"`
}

// Rules is the flattened, construction-time view of a chain config. It is
// plain data so signature handling never dispatches on the config.
type Rules struct {
	ChainID           *big.Int
	IsReplayProtected bool
}

// Rules returns the rule set for c. A nil ChainID resolves to zero.
func (c *ChainConfig) Rules() Rules {
	chainID := c.ChainID
	if chainID == nil {
		chainID = new(big.Int)
	}
	return Rules{
		ChainID:           new(big.Int).Set(chainID),
		IsReplayProtected: c.SponsorReplayProtection,
	}
}

// ResolveChainID returns the chain id mandated by config when present,
// otherwise the candidate, otherwise DefaultChainID. The result is always an
// independent copy.
func ResolveChainID(config *ChainConfig, candidate *big.Int) *big.Int {
	switch {
	case config != nil && config.ChainID != nil:
		return new(big.Int).Set(config.ChainID)
	case candidate != nil:
		return new(big.Int).Set(candidate)
	default:
		return new(big.Int).Set(DefaultChainID)
	}
}

var (
	// MainnetChainConfig is the chain parameters of the main network.
	MainnetChainConfig = &ChainConfig{
		ChainID:                 big.NewInt(1),
		SponsorReplayProtection: true,
	}

	// TestChainConfig is used in tests.
	TestChainConfig = &ChainConfig{
		ChainID:                 big.NewInt(1337),
		SponsorReplayProtection: true,
	}
)
