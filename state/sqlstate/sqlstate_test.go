package sqlstate

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, dbPath string) *Store {
	t.Helper()
	s, err := New(log.WithFields("module", "sqlstate-test"), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpdateCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, path.Join(t.TempDir(), "state.sqlite"))
	asset := common.HexToAddress("0x774667629726ec1fabebcec0d9139bd1c8f72a23")
	who := account.ID{0xd4, 0x35}
	huge := new(uint256.Int).SetAllOne()

	errBoom := errors.New("boom")
	err := s.Update(ctx, func(tx state.Tx) error {
		require.NoError(t, tx.SetBalance(asset, who, huge))
		require.NoError(t, tx.SetTotalIssuance(asset, huge))
		b, err := tx.Balance(asset, who)
		require.NoError(t, err)
		require.Equal(t, huge, b)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	require.NoError(t, s.View(ctx, func(r state.Reader) error {
		b, err := r.Balance(asset, who)
		require.NoError(t, err)
		require.True(t, b.IsZero())
		i, err := r.TotalIssuance(asset)
		require.NoError(t, err)
		require.True(t, i.IsZero())
		return nil
	}))

	committed := false
	require.NoError(t, s.Update(ctx, func(tx state.Tx) error {
		tx.AddCommitCallback(func() { committed = true })
		if err := tx.SetBalance(asset, who, huge); err != nil {
			return err
		}
		return tx.SetTotalIssuance(asset, huge)
	}))
	require.True(t, committed)

	// overwrite an existing row
	require.NoError(t, s.Update(ctx, func(tx state.Tx) error {
		return tx.SetBalance(asset, who, uint256.NewInt(3))
	}))

	require.NoError(t, s.View(ctx, func(r state.Reader) error {
		b, err := r.Balance(asset, who)
		require.NoError(t, err)
		require.Equal(t, uint64(3), b.Uint64())
		i, err := r.TotalIssuance(asset)
		require.NoError(t, err)
		require.Equal(t, huge, i)
		return nil
	}))
}

func TestProcessedMessagesSurviveRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := path.Join(t.TempDir(), "state.sqlite")
	msgID := common.HexToHash("0xaa")
	appID := common.HexToHash("0xbb")

	s := newTestStore(t, dbPath)
	require.NoError(t, s.Update(ctx, func(tx state.Tx) error {
		return tx.MarkProcessed(msgID, appID)
	}))
	err := s.Update(ctx, func(tx state.Tx) error {
		return tx.MarkProcessed(msgID, appID)
	})
	require.ErrorIs(t, err, state.ErrAlreadyProcessed)
	require.NoError(t, s.Close())

	reopened := newTestStore(t, dbPath)
	require.NoError(t, reopened.View(ctx, func(r state.Reader) error {
		processed, err := r.IsProcessed(msgID)
		require.NoError(t, err)
		require.True(t, processed)
		processed, err = r.IsProcessed(appID)
		require.NoError(t, err)
		require.False(t, processed)
		return nil
	}))
}

func TestConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, path.Join(t.TempDir(), "state.sqlite"))
	asset := common.Address{}
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Update(ctx, func(tx state.Tx) error {
				total, err := tx.TotalIssuance(asset)
				if err != nil {
					return err
				}
				return tx.SetTotalIssuance(asset, total.AddUint64(total, 1))
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.NoError(t, s.View(ctx, func(r state.Reader) error {
		total, err := r.TotalIssuance(asset)
		require.NoError(t, err)
		require.Equal(t, uint64(workers), total.Uint64())
		return nil
	}))
}
