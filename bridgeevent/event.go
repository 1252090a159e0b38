package bridgeevent

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Event is the typed result of decoding a foreign log: *NativeTransfer,
// *TokenTransfer or *Unrecognized.
type Event interface {
	Name() string
}

// NativeTransfer is a SendETH log: Amount of the native asset was locked on the
// foreign chain for Recipient.
type NativeTransfer struct {
	Sender    common.Address
	Recipient []byte
	Amount    *uint256.Int
	Nonce     uint64
}

func (*NativeTransfer) Name() string { return "SendETH" }

// TokenTransfer is a SendERC20 log: Amount of Token was locked on the foreign
// chain for Recipient.
type TokenTransfer struct {
	Sender    common.Address
	Recipient []byte
	Token     common.Address
	Amount    *uint256.Int
	Nonce     uint64
}

func (*TokenTransfer) Name() string { return "SendERC20" }

// Unrecognized is any log of the app contract outside the known schema. It is
// not an error: applications ignore it.
type Unrecognized struct {
	Topic common.Hash
}

func (*Unrecognized) Name() string { return "unrecognized" }
