package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	bridgeledger "github.com/0xPolygon/bridgeledger"
	"github.com/0xPolygon/bridgeledger/attestation"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/0xPolygon/bridgeledger/common"
	"github.com/0xPolygon/bridgeledger/config"
	"github.com/0xPolygon/bridgeledger/erc20app"
	"github.com/0xPolygon/bridgeledger/ethapp"
	"github.com/0xPolygon/bridgeledger/ledger"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/rpc"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/0xPolygon/bridgeledger/state/sqlstate"
	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const dataDirPermissions = 0750

func start(cliCtx *cli.Context) error {
	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}

	log.Init(c.Log)

	if c.Log.Environment == log.EnvironmentDevelopment {
		bridgeledger.PrintVersion(os.Stdout)
		log.Info("Starting application")
	} else if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}

	store, closeStore, err := newStore(c.State)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Errorf("error closing state: %v", err)
		}
	}()

	ledgerLogger := log.WithFields("module", common.LEDGER)
	l := ledger.New(ledgerLogger, store, ledger.Notifiers{
		ledger.NewLogNotifier(ledgerLogger),
		ledger.MetricsNotifier{},
	})

	verifier, err := attestation.NewVerifierFromConfig(c.Verifier)
	if err != nil {
		return fmt.Errorf("error creating verifier: %w", err)
	}
	log.Infof("verifier loaded, threshold %d", verifier.Threshold())

	router, err := newRouter(c, l)
	if err != nil {
		return err
	}
	pipeline := bridge.NewPipeline(log.WithFields("module", common.PIPELINE), verifier, router, store)

	ctx, cancel := context.WithCancel(cliCtx.Context)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	for _, component := range cliCtx.StringSlice(config.FlagComponents) {
		switch component {
		case common.RPC:
			server := createRPC(c.RPC, pipeline, l)
			g.Go(server.Start)
			g.Go(func() error {
				<-gctx.Done()
				return server.Stop()
			})
		case common.METRICS:
			if !c.Metrics.Enabled {
				log.Info("metrics component requested but disabled in config")
				continue
			}
			runMetricsServer(gctx, g, c.Metrics)
		default:
			return fmt.Errorf("unknown component %s", component)
		}
	}

	g.Go(func() error {
		waitSignal(gctx, cancel)
		return nil
	})

	return g.Wait()
}

func newStore(c state.Config) (state.Store, func() error, error) {
	switch c.Engine {
	case state.EngineMemory:
		log.Warn("using in-memory state, balances are lost on restart")
		return state.NewMemStore(), func() error { return nil }, nil
	case state.EngineSQLite:
		if err := os.MkdirAll(filepath.Dir(c.DBPath), dataDirPermissions); err != nil {
			return nil, nil, fmt.Errorf("error creating data dir for %s: %w", c.DBPath, err)
		}
		s, err := sqlstate.New(log.WithFields("module", common.STATE), c.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown state engine %q", c.Engine)
	}
}

func newRouter(c *config.Config, l *ledger.Ledger) (*bridge.Router, error) {
	router := bridge.NewRouter()
	apps := []bridge.Application{}
	if c.ETHApp.ContractAddress != (ethcommon.Address{}) {
		apps = append(apps, ethapp.New(log.WithFields("module", ethapp.Name), c.ETHApp, l, nil))
	}
	if c.ERC20App.ContractAddress != (ethcommon.Address{}) {
		apps = append(apps, erc20app.New(log.WithFields("module", erc20app.Name), c.ERC20App, l, nil))
	}
	if len(apps) == 0 {
		return nil, errors.New("no application configured, set ETHApp.ContractAddress or ERC20App.ContractAddress")
	}
	for _, app := range apps {
		id := bridge.AppIDFromAddress(app.ContractAddress())
		if err := router.Register(id, app); err != nil {
			return nil, fmt.Errorf("error registering %s: %w", app.Name(), err)
		}
		log.Infof("registered application %s with id %s", app.Name(), id.Hex())
	}
	return router, nil
}

func createRPC(cfg jRPC.Config, handler rpc.MessageHandler, ledgerReader rpc.LedgerReader) *jRPC.Server {
	logger := log.WithFields("module", common.RPC)
	services := []jRPC.Service{
		{
			Name: rpc.BRIDGE,
			Service: rpc.NewBridgeEndpoints(
				logger,
				cfg.WriteTimeout.Duration,
				cfg.ReadTimeout.Duration,
				handler,
				ledgerReader,
			),
		},
	}

	return jRPC.NewServer(cfg, services, jRPC.WithLogger(logger.GetSugaredLogger()))
}

func logVersion() {
	log.GetDefaultLogger().Infow("Starting application",
		// version is already logged by default
		"gitRevision", bridgeledger.GitRev,
		"gitBranch", bridgeledger.GitBranch,
		"goVersion", runtime.Version(),
		"built", bridgeledger.BuildDate,
		"os/arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
}

func waitSignal(ctx context.Context, cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		log.Infof("received %s, terminating application gracefully...", sig)
		cancel()
	case <-ctx.Done():
	}
}
