package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NativeAsset is the asset key of the foreign chain native currency
var NativeAsset = common.Address{}

var (
	// ErrMintingOverflow is returned when a mint would overflow an account balance
	ErrMintingOverflow = errors.New("minting overflow")
	// ErrTotalMintingOverflow is returned when a mint would overflow the total issuance
	ErrTotalMintingOverflow = fmt.Errorf("%w: total issuance", ErrMintingOverflow)
	// ErrBurningUnderflow is returned when a burn exceeds the account balance
	ErrBurningUnderflow = errors.New("burning underflow")
	// ErrTotalBurningUnderflow is returned when a burn exceeds the total issuance
	ErrTotalBurningUnderflow = fmt.Errorf("%w: total issuance", ErrBurningUnderflow)
)

// Ledger keeps, per asset, the balance of every account and the total
// issuance. Every change goes through Mint or Burn, which keep the total equal
// to the sum of the balances.
type Ledger struct {
	logger   *log.Logger
	store    state.Store
	notifier Notifier
}

// New returns a ledger over store. notifier may be nil.
func New(logger *log.Logger, store state.Store, notifier Notifier) *Ledger {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Ledger{
		logger:   logger,
		store:    store,
		notifier: notifier,
	}
}

func (l *Ledger) Store() state.Store {
	return l.store
}

// Mint credits amount of asset to who in its own transaction
func (l *Ledger) Mint(ctx context.Context, asset common.Address, who account.ID, amount *uint256.Int) error {
	return l.store.Update(ctx, func(tx state.Tx) error {
		return l.MintWithTx(tx, asset, who, amount)
	})
}

// Burn debits amount of asset from who in its own transaction
func (l *Ledger) Burn(ctx context.Context, asset common.Address, who account.ID, amount *uint256.Int) error {
	return l.store.Update(ctx, func(tx state.Tx) error {
		return l.BurnWithTx(tx, asset, who, amount)
	})
}

// MintWithTx credits amount of asset to who as part of tx. A zero amount is a
// no-op. Nothing is written unless both the total issuance and the balance
// can absorb amount.
func (l *Ledger) MintWithTx(tx state.Tx, asset common.Address, who account.ID, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	total, err := tx.TotalIssuance(asset)
	if err != nil {
		return err
	}
	newTotal, overflow := new(uint256.Int).AddOverflow(total, amount)
	if overflow {
		return fmt.Errorf("%w: asset %s, issuance %s, amount %s", ErrTotalMintingOverflow, asset.Hex(), total.Dec(), amount.Dec())
	}
	free, err := tx.Balance(asset, who)
	if err != nil {
		return err
	}
	newFree, overflow := new(uint256.Int).AddOverflow(free, amount)
	if overflow {
		return fmt.Errorf("%w: asset %s, account %s, balance %s, amount %s",
			ErrMintingOverflow, asset.Hex(), who.Hex(), free.Dec(), amount.Dec())
	}

	if err := tx.SetTotalIssuance(asset, newTotal); err != nil {
		return err
	}
	if err := tx.SetBalance(asset, who, newFree); err != nil {
		return err
	}
	n := Notification{Kind: Minted, Account: who, Asset: asset, Amount: amount.Clone()}
	tx.AddCommitCallback(func() { l.notifier.Notify(n) })
	return nil
}

// BurnWithTx debits amount of asset from who as part of tx. A zero amount is a
// no-op.
func (l *Ledger) BurnWithTx(tx state.Tx, asset common.Address, who account.ID, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	total, err := tx.TotalIssuance(asset)
	if err != nil {
		return err
	}
	newTotal, underflow := new(uint256.Int).SubOverflow(total, amount)
	if underflow {
		return fmt.Errorf("%w: asset %s, issuance %s, amount %s", ErrTotalBurningUnderflow, asset.Hex(), total.Dec(), amount.Dec())
	}
	free, err := tx.Balance(asset, who)
	if err != nil {
		return err
	}
	newFree, underflow := new(uint256.Int).SubOverflow(free, amount)
	if underflow {
		return fmt.Errorf("%w: asset %s, account %s, balance %s, amount %s",
			ErrBurningUnderflow, asset.Hex(), who.Hex(), free.Dec(), amount.Dec())
	}

	if err := tx.SetTotalIssuance(asset, newTotal); err != nil {
		return err
	}
	if err := tx.SetBalance(asset, who, newFree); err != nil {
		return err
	}
	n := Notification{Kind: Burned, Account: who, Asset: asset, Amount: amount.Clone()}
	tx.AddCommitCallback(func() { l.notifier.Notify(n) })
	return nil
}

func (l *Ledger) Balance(ctx context.Context, asset common.Address, who account.ID) (*uint256.Int, error) {
	var balance *uint256.Int
	err := l.store.View(ctx, func(r state.Reader) error {
		var err error
		balance, err = r.Balance(asset, who)
		return err
	})
	return balance, err
}

func (l *Ledger) TotalIssuance(ctx context.Context, asset common.Address) (*uint256.Int, error) {
	var total *uint256.Int
	err := l.store.View(ctx, func(r state.Reader) error {
		var err error
		total, err = r.TotalIssuance(asset)
		return err
	})
	return total, err
}
