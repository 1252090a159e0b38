package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	// BRIDGE is the namespace of the bridge service
	BRIDGE    = "bridge"
	meterName = "github.com/0xPolygon/bridgeledger/rpc"

	zeroHex = "0x0"
)

// BridgeEndpoints contains implementations for the "bridge" RPC endpoints
type BridgeEndpoints struct {
	logger       *log.Logger
	meter        metric.Meter
	readTimeout  time.Duration
	writeTimeout time.Duration
	handler      MessageHandler
	ledger       LedgerReader
}

// NewBridgeEndpoints returns BridgeEndpoints
func NewBridgeEndpoints(
	logger *log.Logger,
	writeTimeout time.Duration,
	readTimeout time.Duration,
	handler MessageHandler,
	ledger LedgerReader,
) *BridgeEndpoints {
	meter := otel.Meter(meterName)
	return &BridgeEndpoints{
		logger:       logger,
		meter:        meter,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		handler:      handler,
		ledger:       ledger,
	}
}

func (b *BridgeEndpoints) count(ctx context.Context, name string) {
	c, merr := b.meter.Int64Counter(name)
	if merr != nil {
		b.logger.Warnf("failed to create %s counter: %s", name, merr)
		return
	}
	c.Add(ctx, 1)
}

// SubmitMessage verifies a relayed signed message and applies it with the
// application registered for appID. It returns the id of the applied message.
func (b *BridgeEndpoints) SubmitMessage(appID bridge.AppID, message hexutil.Bytes) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.writeTimeout)
	defer cancel()
	b.count(ctx, "submit_message")

	messageID, err := b.handler.Handle(ctx, appID, message)
	if err != nil {
		return zeroHex, rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf(
			"failed to handle message for app %s, error: %s", appID.Hex(), err),
		)
	}
	return messageID, nil
}

// IsProcessed returns whether the message with the given id was applied
func (b *BridgeEndpoints) IsProcessed(messageID common.Hash) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.readTimeout)
	defer cancel()
	b.count(ctx, "is_processed")

	processed, err := b.handler.IsProcessed(ctx, messageID)
	if err != nil {
		return false, rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf(
			"failed to get status of message %s, error: %s", messageID.Hex(), err),
		)
	}
	return processed, nil
}

// GetBalance returns the free balance of who for asset. The native asset is
// the zero address.
func (b *BridgeEndpoints) GetBalance(asset common.Address, who account.ID) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.readTimeout)
	defer cancel()
	b.count(ctx, "get_balance")

	balance, err := b.ledger.Balance(ctx, asset, who)
	if err != nil {
		return zeroHex, rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf(
			"failed to get balance of %s for asset %s, error: %s", who.Hex(), asset.Hex(), err),
		)
	}
	return (*hexutil.U256)(balance), nil
}

// GetTotalIssuance returns the amount of asset minted and not burned
func (b *BridgeEndpoints) GetTotalIssuance(asset common.Address) (interface{}, rpc.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.readTimeout)
	defer cancel()
	b.count(ctx, "get_total_issuance")

	total, err := b.ledger.TotalIssuance(ctx, asset)
	if err != nil {
		return zeroHex, rpc.NewRPCError(rpc.DefaultErrorCode, fmt.Sprintf(
			"failed to get total issuance of asset %s, error: %s", asset.Hex(), err),
		)
	}
	return (*hexutil.U256)(total), nil
}
