package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"

	"github.com/sponsornet/sponsorchain/cmd/utils"
	"github.com/sponsornet/sponsorchain/core/types"
	"github.com/sponsornet/sponsorchain/turbo/app"
)

func main() {
	defer func() {
		panicRes := recover()
		if panicRes == nil {
			return
		}
		log.Error("catch panic", "err", panicRes)
		os.Exit(1)
	}()

	commands := []*cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode a hex-encoded sponsored transaction and print its JSON projection",
			ArgsUsage: "<hex-tx>",
			Flags:     []cli.Flag{utils.PrettyFlag},
			Action:    runDecode,
		},
		{
			Name:      "hash",
			Usage:     "Print the canonical hash of a signed hex-encoded transaction",
			ArgsUsage: "<hex-tx>",
			Action:    runHash,
		},
		{
			Name:      "sign",
			Usage:     "Sign a hex-encoded transaction with the given sender key",
			ArgsUsage: "<hex-tx>",
			Flags:     []cli.Flag{utils.ChainIDFlag, utils.KeyHexFlag, utils.UnprotectedFlag},
			Action:    runSign,
		},
		{
			Name:      "sender",
			Usage:     "Recover the sender address of a signed hex-encoded transaction",
			ArgsUsage: "<hex-tx>",
			Flags:     []cli.Flag{utils.ChainIDFlag},
			Action:    runSender,
		},
	}
	a := app.MakeApp("sponsorchain", commands, nil)
	if err := a.Run(os.Args); err != nil {
		_, printErr := fmt.Fprintln(os.Stderr, err)
		if printErr != nil {
			log.Warn("Fprintln error", "err", printErr)
		}
		os.Exit(1)
	}
}

func txFromArg(cliCtx *cli.Context) (*types.Transaction, error) {
	arg := cliCtx.Args().First()
	if arg == "" {
		return nil, errors.New("missing hex transaction argument")
	}
	b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return types.DecodeSponsoredTx(b)
}

func runDecode(cliCtx *cli.Context) error {
	tx, err := txFromArg(cliCtx)
	if err != nil {
		return err
	}
	var enc []byte
	if cliCtx.Bool(utils.PrettyFlag.Name) {
		enc, err = json.MarshalIndent(tx, "", "  ")
	} else {
		enc, err = json.Marshal(tx)
	}
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}

func runHash(cliCtx *cli.Context) error {
	tx, err := txFromArg(cliCtx)
	if err != nil {
		return err
	}
	hash, err := tx.Hash()
	if err != nil {
		return err
	}
	fmt.Println(hash.Hex())
	return nil
}

func runSign(cliCtx *cli.Context) error {
	tx, err := txFromArg(cliCtx)
	if err != nil {
		return err
	}
	keyHex := cliCtx.String(utils.KeyHexFlag.Name)
	if keyHex == "" {
		return errors.New("missing --key")
	}
	prv, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return fmt.Errorf("invalid sender key: %w", err)
	}
	chainId := new(big.Int).SetUint64(cliCtx.Uint64(utils.ChainIDFlag.Name))
	signer := types.NewSponsoredSigner(chainId, !cliCtx.Bool(utils.UnprotectedFlag.Name))
	signed, err := types.SignTx(tx, signer, prv)
	if err != nil {
		return err
	}
	enc, err := signed.MarshalBinary()
	if err != nil {
		return err
	}
	log.Info("transaction signed", "chainId", chainId, "size", len(enc))
	fmt.Println("0x" + hex.EncodeToString(enc))
	return nil
}

func runSender(cliCtx *cli.Context) error {
	tx, err := txFromArg(cliCtx)
	if err != nil {
		return err
	}
	chainId := new(big.Int).SetUint64(cliCtx.Uint64(utils.ChainIDFlag.Name))
	addr, err := types.Sender(types.NewSponsoredSigner(chainId, true), tx)
	if err != nil {
		return err
	}
	fmt.Println(addr.Hex())
	return nil
}
