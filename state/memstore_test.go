package state

import (
	"context"
	"errors"
	"testing"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestMemStoreUpdateIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	asset := common.HexToAddress("0x01")
	who := account.ID{1}

	errBoom := errors.New("boom")
	called := false
	err := s.Update(ctx, func(tx Tx) error {
		require.NoError(t, tx.SetBalance(asset, who, uint256.NewInt(10)))
		require.NoError(t, tx.SetTotalIssuance(asset, uint256.NewInt(10)))
		// reads inside the tx see its own writes
		b, err := tx.Balance(asset, who)
		require.NoError(t, err)
		require.Equal(t, uint64(10), b.Uint64())
		tx.AddCommitCallback(func() { called = true })
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.False(t, called)

	require.NoError(t, s.View(ctx, func(r Reader) error {
		b, err := r.Balance(asset, who)
		require.NoError(t, err)
		require.True(t, b.IsZero())
		i, err := r.TotalIssuance(asset)
		require.NoError(t, err)
		require.True(t, i.IsZero())
		return nil
	}))

	err = s.Update(ctx, func(tx Tx) error {
		tx.AddCommitCallback(func() { called = true })
		if err := tx.SetBalance(asset, who, uint256.NewInt(10)); err != nil {
			return err
		}
		return tx.SetTotalIssuance(asset, uint256.NewInt(10))
	})
	require.NoError(t, err)
	require.True(t, called)

	require.NoError(t, s.View(ctx, func(r Reader) error {
		b, err := r.Balance(asset, who)
		require.NoError(t, err)
		require.Equal(t, uint64(10), b.Uint64())
		// returned values are copies
		b.SetUint64(99)
		b, err = r.Balance(asset, who)
		require.NoError(t, err)
		require.Equal(t, uint64(10), b.Uint64())
		return nil
	}))
}

func TestMemStoreProcessed(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	msgID := common.HexToHash("0xabcd")
	appID := common.HexToHash("0x01")

	require.NoError(t, s.Update(ctx, func(tx Tx) error {
		return tx.MarkProcessed(msgID, appID)
	}))
	err := s.Update(ctx, func(tx Tx) error {
		return tx.MarkProcessed(msgID, appID)
	})
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	require.NoError(t, s.View(ctx, func(r Reader) error {
		processed, err := r.IsProcessed(msgID)
		require.NoError(t, err)
		require.True(t, processed)
		processed, err = r.IsProcessed(appID)
		require.NoError(t, err)
		require.False(t, processed)
		return nil
	}))
}

func TestMemStoreViewIsReadOnly(t *testing.T) {
	s := NewMemStore()
	err := s.View(context.Background(), func(r Reader) error {
		return r.(Tx).SetTotalIssuance(common.Address{}, uint256.NewInt(1))
	})
	require.Error(t, err)
}

func TestMemStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemStore()
	require.ErrorIs(t, s.Update(ctx, func(tx Tx) error { return nil }), context.Canceled)
	require.ErrorIs(t, s.View(ctx, func(r Reader) error { return nil }), context.Canceled)
}
