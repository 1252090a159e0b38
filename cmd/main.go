package main

import (
	"os"

	bridgeledger "github.com/0xPolygon/bridgeledger"
	"github.com/0xPolygon/bridgeledger/common"
	"github.com/0xPolygon/bridgeledger/config"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/urfave/cli/v2"
)

const appName = "bridgeledger"

const (
	flagURL     = "url"
	flagApp     = "app"
	flagMessage = "message"
)

var (
	configFileFlag = cli.StringSliceFlag{
		Name:     config.FlagCfg,
		Aliases:  []string{"c"},
		Usage:    "Configuration file(s)",
		Required: true,
	}
	componentsFlag = cli.StringSliceFlag{
		Name:     config.FlagComponents,
		Aliases:  []string{"co"},
		Usage:    "List of components to run next to the message pipeline",
		Required: false,
		Value:    cli.NewStringSlice(common.RPC, common.METRICS),
	}
	saveConfigFlag = cli.StringFlag{
		Name:     config.FlagSaveConfigPath,
		Aliases:  []string{"s"},
		Usage:    "Save final configuration into to the indicated path (name: bridgeledger_config.toml)",
		Required: false,
	}
	schemaFlag = cli.BoolFlag{
		Name:     config.FlagSchema,
		Usage:    "Print the JSON schema of the configuration instead of the default values",
		Required: false,
	}
	keyFlag = cli.StringSliceFlag{
		Name:     config.FlagKey,
		Aliases:  []string{"k"},
		Usage:    "Hex private key file(s) of the attesters, in signer set order",
		Required: true,
	}
	payloadFlag = cli.StringFlag{
		Name:     config.FlagPayload,
		Aliases:  []string{"p"},
		Usage:    "Hex encoded payload (RLP encoded log) to attest",
		Required: true,
	}
	urlFlag = cli.StringFlag{
		Name:  flagURL,
		Usage: "URL of the bridgeledger JSON-RPC server",
		Value: "http://localhost:5576",
	}
	appFlag = cli.StringFlag{
		Name:     flagApp,
		Usage:    "Contract address of the destination application",
		Required: true,
	}
	messageFlag = cli.StringFlag{
		Name:     flagMessage,
		Aliases:  []string{"m"},
		Usage:    "Hex encoded signed message, as produced by attest",
		Required: true,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Version = bridgeledger.Version
	app.Commands = []*cli.Command{
		{
			Name:    "version",
			Aliases: []string{},
			Usage:   "Application version and build",
			Action:  versionCmd,
		},
		{
			Name:    "run",
			Aliases: []string{},
			Usage:   "Run the bridge ledger node",
			Action:  start,
			Flags:   []cli.Flag{&configFileFlag, &componentsFlag, &saveConfigFlag},
		},
		{
			Name:    "config",
			Aliases: []string{},
			Usage:   "Generate the default configuration file",
			Action:  configCmd,
			Flags:   []cli.Flag{&schemaFlag},
		},
		{
			Name:    "attest",
			Aliases: []string{},
			Usage:   "Sign a payload with one or more attester keys and print the signed message",
			Action:  attestCmd,
			Flags:   []cli.Flag{&keyFlag, &payloadFlag},
		},
		{
			Name:    "submit",
			Aliases: []string{},
			Usage:   "Submit a signed message to a running node",
			Action:  submitCmd,
			Flags:   []cli.Flag{&urlFlag, &appFlag, &messageFlag},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func versionCmd(*cli.Context) error {
	bridgeledger.PrintVersion(os.Stdout)
	return nil
}
