package ethapp

import (
	"context"
	"fmt"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridgeevent"
	"github.com/0xPolygon/bridgeledger/ledger"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Name identifies the application in logs and metrics
const Name = "ethapp"

// Config of the native asset application
type Config struct {
	// ContractAddress is the ETH app contract on the foreign chain. Its logs are
	// the only ones this application accepts, and it derives the app id.
	ContractAddress common.Address `mapstructure:"ContractAddress"`
}

// App mints the native asset for every SendETH log relayed from the foreign
// ETH app contract, and lets accounts burn it back.
type App struct {
	logger   *log.Logger
	decoder  *bridgeevent.Decoder
	resolver account.Resolver
	ledger   *ledger.Ledger
}

// New builds the app. A nil resolver only accepts 32 byte recipients.
func New(logger *log.Logger, cfg Config, l *ledger.Ledger, resolver account.Resolver) *App {
	if resolver == nil {
		resolver = account.FixedLengthResolver{}
	}
	return &App{
		logger:   logger,
		decoder:  bridgeevent.NewDecoder(cfg.ContractAddress),
		resolver: resolver,
		ledger:   l,
	}
}

func (a *App) Name() string {
	return Name
}

func (a *App) ContractAddress() common.Address {
	return a.decoder.Emitter()
}

// HandleWithTx applies the verified payload as part of tx. Events other than
// SendETH are accepted and ignored.
func (a *App) HandleWithTx(tx state.Tx, payload []byte) error {
	ev, err := a.decoder.Decode(payload)
	if err != nil {
		return err
	}
	transfer, ok := ev.(*bridgeevent.NativeTransfer)
	if !ok {
		a.logger.Debugf("ignoring %s event", ev.Name())
		return nil
	}
	who, err := a.resolver.Resolve(transfer.Recipient)
	if err != nil {
		return fmt.Errorf("SendETH nonce %d: %w", transfer.Nonce, err)
	}
	if err := a.ledger.MintWithTx(tx, ledger.NativeAsset, who, transfer.Amount); err != nil {
		return err
	}
	a.logger.Debugf("SendETH nonce %d from %s: minting %s to %s",
		transfer.Nonce, transfer.Sender.Hex(), transfer.Amount.Dec(), who.Hex())
	return nil
}

// Burn destroys amount of the native asset held by who
func (a *App) Burn(ctx context.Context, who account.ID, amount *uint256.Int) error {
	return a.ledger.Burn(ctx, ledger.NativeAsset, who, amount)
}

func (a *App) Balance(ctx context.Context, who account.ID) (*uint256.Int, error) {
	return a.ledger.Balance(ctx, ledger.NativeAsset, who)
}

func (a *App) TotalIssuance(ctx context.Context) (*uint256.Int, error) {
	return a.ledger.TotalIssuance(ctx, ledger.NativeAsset)
}
