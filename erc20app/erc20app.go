package erc20app

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
const Name = "erc20app"

type Config struct {
	// ContractAddress is the ERC20 app contract on the foreign chain
	ContractAddress common.Address `mapstructure:"ContractAddress"`
}

// App tracks a balance per (token, account) for the tokens locked in the
// foreign ERC20 app contract. Tokens are keyed by their foreign address.
type App struct {
	logger   *log.Logger
	decoder  *bridgeevent.Decoder
	resolver account.Resolver
	ledger   *ledger.Ledger
}

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

func (a *App) HandleWithTx(tx state.Tx, payload []byte) error {
	ev, err := a.decoder.Decode(payload)
	if err != nil {
		return err
	}
	transfer, ok := ev.(*bridgeevent.TokenTransfer)
	if !ok {
		a.logger.Debugf("ignoring %s event", ev.Name())
		return nil
	}
	// the native asset key is reserved
	if transfer.Token == ledger.NativeAsset {
		return fmt.Errorf("%w: SendERC20 nonce %d with zero token address", bridgeevent.ErrDecode, transfer.Nonce)
	}
	who, err := a.resolver.Resolve(transfer.Recipient)
	if err != nil {
		return fmt.Errorf("SendERC20 nonce %d: %w", transfer.Nonce, err)
	}
	if err := a.ledger.MintWithTx(tx, transfer.Token, who, transfer.Amount); err != nil {
		return err
	}
	a.logger.Debugf("SendERC20 nonce %d from %s: minting %s of token %s to %s",
		transfer.Nonce, transfer.Sender.Hex(), transfer.Amount.Dec(), transfer.Token.Hex(), who.Hex())
	return nil
}

// Burn destroys amount of token held by who
func (a *App) Burn(ctx context.Context, token common.Address, who account.ID, amount *uint256.Int) error {
	return a.ledger.Burn(ctx, token, who, amount)
}

func (a *App) Balance(ctx context.Context, token common.Address, who account.ID) (*uint256.Int, error) {
	return a.ledger.Balance(ctx, token, who)
}

func (a *App) TotalIssuance(ctx context.Context, token common.Address) (*uint256.Int, error) {
	return a.ledger.TotalIssuance(ctx, token)
}
