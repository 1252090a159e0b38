package helpers

import (
	"crypto/ecdsa"
	"fmt"
	"net"
	"path"
	"testing"
	"time"

	"github.com/0xPolygon/bridgeledger/attestation"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/0xPolygon/bridgeledger/erc20app"
	"github.com/0xPolygon/bridgeledger/ethapp"
	"github.com/0xPolygon/bridgeledger/ledger"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/rpc"
	rpcclient "github.com/0xPolygon/bridgeledger/rpc/client"
	"github.com/0xPolygon/bridgeledger/state/sqlstate"
	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const (
	numSigners        = 4
	maxRequestsPerSec = 1000
	rpcTimeout        = 5 * time.Second
)

var (
	ETHAppAddr   = common.HexToAddress("0xfc97a6197dc90bef6bbefd672742ed75e9768553")
	ERC20AppAddr = common.HexToAddress("0xeda338e4dc46038493b885327842fd3e301cab39")
)

// BridgeEnv is a complete node backed by sqlite and served over JSON-RPC,
// plus the keys of its signer set so tests can play the relayer.
type BridgeEnv struct {
	Attester *attestation.Attester
	Ledger   *ledger.Ledger
	Store    *sqlstate.Store
	Pipeline *bridge.Pipeline
	Client   *rpcclient.Client
	ETHID    bridge.AppID
	ERC20ID  bridge.AppID
}

func NewBridgeEnv(t *testing.T) *BridgeEnv {
	t.Helper()
	logger := log.WithFields("module", "e2e")

	keys := make([]*ecdsa.PrivateKey, 0, numSigners)
	for i := 0; i < numSigners; i++ {
		k, err := crypto.GenerateKey()
		require.NoError(t, err)
		keys = append(keys, k)
	}
	attester := attestation.NewAttester(keys...)
	verifier, err := attestation.NewVerifier(attester.Signers(), 0)
	require.NoError(t, err)

	store, err := sqlstate.New(logger, path.Join(t.TempDir(), "state.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	l := ledger.New(logger, store, ledger.NewLogNotifier(logger))
	router := bridge.NewRouter()
	eth := ethapp.New(logger, ethapp.Config{ContractAddress: ETHAppAddr}, l, nil)
	erc20 := erc20app.New(logger, erc20app.Config{ContractAddress: ERC20AppAddr}, l, nil)
	ethID := bridge.AppIDFromAddress(ETHAppAddr)
	erc20ID := bridge.AppIDFromAddress(ERC20AppAddr)
	require.NoError(t, router.Register(ethID, eth))
	require.NoError(t, router.Register(erc20ID, erc20))
	pipeline := bridge.NewPipeline(logger, verifier, router, store)

	port := freePort(t)
	server := jRPC.NewServer(
		jRPC.Config{Host: "127.0.0.1", Port: port, MaxRequestsPerIPAndSecond: maxRequestsPerSec},
		[]jRPC.Service{{
			Name:    rpc.BRIDGE,
			Service: rpc.NewBridgeEndpoints(logger, rpcTimeout, rpcTimeout, pipeline, l),
		}},
		jRPC.WithLogger(logger.GetSugaredLogger()),
	)
	go func() {
		if err := server.Start(); err != nil {
			logger.Errorf("rpc server stopped: %v", err)
		}
	}()
	t.Cleanup(func() { _ = server.Stop() })

	client := rpcclient.NewClient(fmt.Sprintf("http://127.0.0.1:%d", port))
	RequireServerUp(t, client)

	return &BridgeEnv{
		Attester: attester,
		Ledger:   l,
		Store:    store,
		Pipeline: pipeline,
		Client:   client,
		ETHID:    ethID,
		ERC20ID:  erc20ID,
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}
