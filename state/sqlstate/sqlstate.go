package sqlstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/db"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/0xPolygon/bridgeledger/state"
	"github.com/0xPolygon/bridgeledger/state/sqlstate/migrations"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/mattn/go-sqlite3"
	"github.com/russross/meddler"
)

const errWhileRollbackFormat = "error while rolling back tx: %v"

type balanceRow struct {
	Asset   common.Address `meddler:"asset,address"`
	Account string         `meddler:"account"`
	Free    *uint256.Int   `meddler:"free,uint256"`
}

type issuanceRow struct {
	Asset  common.Address `meddler:"asset,address"`
	Amount *uint256.Int   `meddler:"amount,uint256"`
}

type processedRow struct {
	MessageID   common.Hash `meddler:"message_id,hash"`
	AppID       common.Hash `meddler:"app_id,hash"`
	ProcessedAt int64       `meddler:"processed_at"`
}

var _ state.Store = (*Store)(nil)

// Store is a state.Store persisted in sqlite
type Store struct {
	logger *log.Logger
	db     *sql.DB
	// sqlite allows a single writer, writers queue here instead of failing with SQLITE_BUSY
	writeMu sync.Mutex
}

// New runs the migrations on dbPath and opens it
func New(logger *log.Logger, dbPath string) (*Store, error) {
	if err := migrations.RunMigrations(dbPath); err != nil {
		return nil, err
	}
	database, err := db.NewSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{
		logger: logger,
		db:     database,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Update(ctx context.Context, fn func(tx state.Tx) error) (err error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := db.NewTx(ctx, s.db)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if errRllbck := tx.Rollback(); errRllbck != nil {
				s.logger.Errorf(errWhileRollbackFormat, errRllbck)
			}
		}
	}()

	if err = fn(&sqlTx{sqlReader: sqlReader{q: tx}, tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) View(ctx context.Context, fn func(r state.Reader) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return err
	}
	defer func() {
		if errRllbck := tx.Rollback(); errRllbck != nil && !errors.Is(errRllbck, sql.ErrTxDone) {
			s.logger.Errorf(errWhileRollbackFormat, errRllbck)
		}
	}()
	return fn(&sqlReader{q: tx})
}

type sqlReader struct {
	q meddler.DB
}

func (r *sqlReader) Balance(asset common.Address, who account.ID) (*uint256.Int, error) {
	row := &balanceRow{}
	err := meddler.QueryRow(r.q, row,
		"SELECT * FROM account_balance WHERE asset = $1 AND account = $2;", asset.Hex(), who.Hex())
	if err != nil {
		return zeroIfNotFound(err)
	}
	return row.Free, nil
}

func (r *sqlReader) TotalIssuance(asset common.Address) (*uint256.Int, error) {
	row := &issuanceRow{}
	err := meddler.QueryRow(r.q, row, "SELECT * FROM total_issuance WHERE asset = $1;", asset.Hex())
	if err != nil {
		return zeroIfNotFound(err)
	}
	return row.Amount, nil
}

func (r *sqlReader) IsProcessed(messageID common.Hash) (bool, error) {
	var count int
	err := r.q.QueryRow("SELECT COUNT(*) FROM processed_message WHERE message_id = $1;", messageID.Hex()).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func zeroIfNotFound(err error) (*uint256.Int, error) {
	if errors.Is(db.ReturnErrNotFound(err), db.ErrNotFound) {
		return new(uint256.Int), nil
	}
	return nil, err
}

type sqlTx struct {
	sqlReader
	tx *db.Tx
}

func (t *sqlTx) SetBalance(asset common.Address, who account.ID, amount *uint256.Int) error {
	_, err := t.tx.Exec(`
		INSERT INTO account_balance (asset, account, free) VALUES ($1, $2, $3)
		ON CONFLICT (asset, account) DO UPDATE SET free = excluded.free;
	`, asset.Hex(), who.Hex(), amount.Dec())
	return err
}

func (t *sqlTx) SetTotalIssuance(asset common.Address, amount *uint256.Int) error {
	_, err := t.tx.Exec(`
		INSERT INTO total_issuance (asset, amount) VALUES ($1, $2)
		ON CONFLICT (asset) DO UPDATE SET amount = excluded.amount;
	`, asset.Hex(), amount.Dec())
	return err
}

func (t *sqlTx) MarkProcessed(messageID, appID common.Hash) error {
	err := meddler.Insert(t.tx, "processed_message", &processedRow{
		MessageID:   messageID,
		AppID:       appID,
		ProcessedAt: time.Now().Unix(),
	})
	if err == nil {
		return nil
	}
	if sqliteErr, ok := db.SQLiteErr(err); ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
		return fmt.Errorf("%w: %s", state.ErrAlreadyProcessed, messageID.Hex())
	}
	return err
}

func (t *sqlTx) AddCommitCallback(cb func()) {
	t.tx.AddCommitCallback(cb)
}
