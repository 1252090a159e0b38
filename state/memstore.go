package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type balanceKey struct {
	asset common.Address
	who   account.ID
}

type ledgerMaps struct {
	balances  map[balanceKey]*uint256.Int
	issuance  map[common.Address]*uint256.Int
	processed map[common.Hash]common.Hash
}

func newLedgerMaps() ledgerMaps {
	return ledgerMaps{
		balances:  make(map[balanceKey]*uint256.Int),
		issuance:  make(map[common.Address]*uint256.Int),
		processed: make(map[common.Hash]common.Hash),
	}
}

var errReadOnly = errors.New("write on read-only view")

var _ Store = (*MemStore)(nil)

// MemStore is a Store kept in memory
type MemStore struct {
	mu sync.RWMutex
	ledgerMaps
}

func NewMemStore() *MemStore {
	return &MemStore{ledgerMaps: newLedgerMaps()}
}

func (s *MemStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.apply(fn)
	if err != nil {
		return err
	}
	for _, cb := range tx.commitCallbacks {
		cb()
	}
	return nil
}

func (s *MemStore) apply(fn func(tx Tx) error) (*memTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{base: &s.ledgerMaps, overlay: newLedgerMaps()}
	if err := fn(tx); err != nil {
		return nil, err
	}
	for k, v := range tx.overlay.balances {
		s.balances[k] = v
	}
	for k, v := range tx.overlay.issuance {
		s.issuance[k] = v
	}
	for k, v := range tx.overlay.processed {
		s.processed[k] = v
	}
	return tx, nil
}

func (s *MemStore) View(ctx context.Context, fn func(r Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{base: &s.ledgerMaps})
}

// memTx reads through its overlay into the committed maps
type memTx struct {
	base            *ledgerMaps
	overlay         ledgerMaps
	commitCallbacks []func()
}

func (t *memTx) Balance(asset common.Address, who account.ID) (*uint256.Int, error) {
	k := balanceKey{asset: asset, who: who}
	if v, ok := t.overlay.balances[k]; ok {
		return v.Clone(), nil
	}
	if v, ok := t.base.balances[k]; ok {
		return v.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (t *memTx) TotalIssuance(asset common.Address) (*uint256.Int, error) {
	if v, ok := t.overlay.issuance[asset]; ok {
		return v.Clone(), nil
	}
	if v, ok := t.base.issuance[asset]; ok {
		return v.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (t *memTx) IsProcessed(messageID common.Hash) (bool, error) {
	if _, ok := t.overlay.processed[messageID]; ok {
		return true, nil
	}
	_, ok := t.base.processed[messageID]
	return ok, nil
}

func (t *memTx) SetBalance(asset common.Address, who account.ID, amount *uint256.Int) error {
	if t.overlay.balances == nil {
		return errReadOnly
	}
	t.overlay.balances[balanceKey{asset: asset, who: who}] = amount.Clone()
	return nil
}

func (t *memTx) SetTotalIssuance(asset common.Address, amount *uint256.Int) error {
	if t.overlay.issuance == nil {
		return errReadOnly
	}
	t.overlay.issuance[asset] = amount.Clone()
	return nil
}

func (t *memTx) MarkProcessed(messageID, appID common.Hash) error {
	if t.overlay.processed == nil {
		return errReadOnly
	}
	processed, _ := t.IsProcessed(messageID)
	if processed {
		return fmt.Errorf("%w: %s", ErrAlreadyProcessed, messageID.Hex())
	}
	t.overlay.processed[messageID] = appID
	return nil
}

func (t *memTx) AddCommitCallback(cb func()) {
	t.commitCallbacks = append(t.commitCallbacks, cb)
}
