package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/0xPolygon/bridgeledger/attestation"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/0xPolygon/bridgeledger/config"
	rpc "github.com/0xPolygon/bridgeledger/rpc/client"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

func attestCmd(cliCtx *cli.Context) error {
	attester, err := attestation.LoadAttester(cliCtx.StringSlice(config.FlagKey))
	if err != nil {
		return err
	}
	payload, err := hexutil.Decode(strings.TrimSpace(cliCtx.String(config.FlagPayload)))
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	message, err := attester.Attest(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, hexutil.Encode(message))
	return err
}

func submitCmd(cliCtx *cli.Context) error {
	appAddr := cliCtx.String(flagApp)
	if !common.IsHexAddress(appAddr) {
		return fmt.Errorf("invalid application address %q", appAddr)
	}
	message, err := hexutil.Decode(strings.TrimSpace(cliCtx.String(flagMessage)))
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	client := rpc.NewClient(cliCtx.String(flagURL))
	messageID, err := client.SubmitMessage(bridge.AppIDFromAddress(common.HexToAddress(appAddr)), message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, messageID.Hex())
	return err
}
