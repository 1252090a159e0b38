package bridge

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/0xPolygon/bridgeledger/state"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrUnknownApplication is returned when no application is registered for an AppID
	ErrUnknownApplication = errors.New("unknown application")
	// ErrExistingApplication is returned when registering an AppID twice
	ErrExistingApplication = errors.New("application already registered")
)

// AppID identifies a bridge application: the address of its contract on the
// foreign chain, left aligned in 32 bytes.
type AppID [32]byte

// AppIDFromAddress derives the AppID of the application whose foreign
// contract lives at addr.
func AppIDFromAddress(addr common.Address) AppID {
	var id AppID
	copy(id[:], addr.Bytes())
	return id
}

func (id AppID) Hex() string { return hexutil.Encode(id[:]) }

func (id AppID) String() string { return id.Hex() }

// Hash returns the id as a common.Hash, the form stored by state.Tx
func (id AppID) Hash() common.Hash { return common.Hash(id) }

func (id AppID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id[:]).MarshalText()
}

func (id *AppID) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("AppID", input, id[:])
}

// Application consumes the verified payloads routed to it
type Application interface {
	Name() string
	// ContractAddress is the foreign contract emitting the logs the application accepts
	ContractAddress() common.Address
	// HandleWithTx applies payload as part of tx. Any error discards every write of tx.
	HandleWithTx(tx state.Tx, payload []byte) error
}

// Router maps AppIDs to applications
type Router struct {
	mu   sync.RWMutex
	apps map[AppID]Application
}

func NewRouter() *Router {
	return &Router{apps: make(map[AppID]Application)}
}

func (r *Router) Register(id AppID, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.apps[id]; ok {
		return fmt.Errorf("%w: %s is %s", ErrExistingApplication, id.Hex(), existing.Name())
	}
	r.apps[id] = app
	return nil
}

func (r *Router) Lookup(id AppID) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownApplication, id.Hex())
	}
	return app, nil
}

// AppIDs returns the registered ids in ascending order
func (r *Router) AppIDs() []AppID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]AppID, 0, len(r.apps))
	for id := range r.apps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return string(ids[i][:]) < string(ids[j][:])
	})
	return ids
}
