package state

import (
	"context"
	"errors"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// EngineMemory keeps the ledger in process memory
	EngineMemory = "memory"
	// EngineSQLite persists the ledger in a sqlite file
	EngineSQLite = "sqlite"
)

// ErrAlreadyProcessed is returned when marking a message that was already applied
var ErrAlreadyProcessed = errors.New("message already processed")

// Config of the ledger state
type Config struct {
	// Engine is the storage backend: "memory" or "sqlite"
	Engine string `mapstructure:"Engine" jsonschema:"enum=memory,enum=sqlite"`
	// DBPath is the sqlite file, only used by the sqlite engine
	DBPath string `mapstructure:"DBPath"`
}

// Reader gives read access to the ledger. Absent entries read as zero.
type Reader interface {
	Balance(asset common.Address, who account.ID) (*uint256.Int, error)
	TotalIssuance(asset common.Address) (*uint256.Int, error)
	IsProcessed(messageID common.Hash) (bool, error)
}

// Tx is a read-write view of the ledger. Writes only become visible once the
// enclosing Update returns without error.
type Tx interface {
	Reader
	SetBalance(asset common.Address, who account.ID, amount *uint256.Int) error
	SetTotalIssuance(asset common.Address, amount *uint256.Int) error
	MarkProcessed(messageID, appID common.Hash) error
	// AddCommitCallback registers cb to run once the transaction is committed
	AddCommitCallback(cb func())
}

// Store runs ledger transactions. Update calls are serialized: fn observes
// the state left by the previous Update, and either all of its writes are
// applied or none.
type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(r Reader) error) error
}
