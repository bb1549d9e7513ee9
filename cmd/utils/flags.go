package utils

import "github.com/urfave/cli/v2"

var (
	// General settings
	ChainIDFlag = &cli.Uint64Flag{
		Name:  "chainid",
		Usage: "Chain id used for signature replay protection",
		Value: 1,
	}
	UnprotectedFlag = &cli.BoolFlag{
		Name:  "unprotected",
		Usage: "Produce signatures without chain-bound replay protection",
	}
	KeyHexFlag = &cli.StringFlag{
		Name:  "key",
		Usage: "Hex-encoded sender private key",
	}
	PrettyFlag = &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Indent JSON output",
	}
)
