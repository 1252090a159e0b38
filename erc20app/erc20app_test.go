package erc20app

import (
	"context"
	"testing"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridgeevent"
	"github.com/0xPolygon/bridgeledger/ledger"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	contract = common.HexToAddress("0xeda338e4dc46038493b885327842fd3e301cab39")
	sender   = common.HexToAddress("0xcffeaaf7681c89285d65cfbe808b80e502696573")
	tokenA   = common.HexToAddress("0x774667629726ec1fabebcec0d9139bd1c8f72a23")
	tokenB   = common.HexToAddress("0x83f00bc9d39b7bd3b1f25b3a5e0e24d2b6ea7e0f")
	bob      = account.ID{0xb0, 0xb0}
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := log.WithFields("module", "erc20app-test")
	l := ledger.New(logger, state.NewMemStore(), nil)
	return New(logger, Config{ContractAddress: contract}, l, nil)
}

func handle(app *App, payload []byte) error {
	return app.ledger.Store().Update(context.Background(), func(tx state.Tx) error {
		return app.HandleWithTx(tx, payload)
	})
}

func sendERC20(t *testing.T, token common.Address, amount uint64, nonce uint64) []byte {
	t.Helper()
	payload, err := bridgeevent.EncodePayload(contract, &bridgeevent.TokenTransfer{
		Sender:    sender,
		Recipient: bob.Bytes(),
		Token:     token,
		Amount:    uint256.NewInt(amount),
		Nonce:     nonce,
	})
	require.NoError(t, err)
	return payload
}

func TestHandleSendERC20(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	require.NoError(t, handle(app, sendERC20(t, tokenA, 20, 0)))
	require.NoError(t, handle(app, sendERC20(t, tokenA, 5, 1)))
	require.NoError(t, handle(app, sendERC20(t, tokenB, 7, 2)))

	for token, expected := range map[common.Address]uint64{tokenA: 25, tokenB: 7} {
		balance, err := app.Balance(ctx, token, bob)
		require.NoError(t, err)
		require.Equal(t, expected, balance.Uint64())
		total, err := app.TotalIssuance(ctx, token)
		require.NoError(t, err)
		require.Equal(t, expected, total.Uint64())
	}
	native, err := app.TotalIssuance(ctx, ledger.NativeAsset)
	require.NoError(t, err)
	require.True(t, native.IsZero())

	require.NoError(t, app.Burn(ctx, tokenA, bob, uint256.NewInt(25)))
	balance, err := app.Balance(ctx, tokenA, bob)
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	err = app.Burn(ctx, tokenB, bob, uint256.NewInt(8))
	require.ErrorIs(t, err, ledger.ErrBurningUnderflow)
}

func TestHandleIgnoresSendETH(t *testing.T) {
	app := newTestApp(t)
	payload, err := bridgeevent.EncodePayload(contract, &bridgeevent.NativeTransfer{
		Sender:    sender,
		Recipient: bob.Bytes(),
		Amount:    uint256.NewInt(1),
	})
	require.NoError(t, err)
	require.NoError(t, handle(app, payload))

	total, err := app.TotalIssuance(context.Background(), ledger.NativeAsset)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestHandleRejectsZeroToken(t *testing.T) {
	app := newTestApp(t)
	err := handle(app, sendERC20(t, common.Address{}, 1, 0))
	require.ErrorIs(t, err, bridgeevent.ErrDecode)
}
