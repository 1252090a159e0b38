package rpc

import (
	"context"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type MessageHandler interface {
	Handle(ctx context.Context, appID bridge.AppID, message []byte) (common.Hash, error)
	IsProcessed(ctx context.Context, messageID common.Hash) (bool, error)
}

type LedgerReader interface {
	Balance(ctx context.Context, asset common.Address, who account.ID) (*uint256.Int, error)
	TotalIssuance(ctx context.Context, asset common.Address) (*uint256.Int, error)
}
