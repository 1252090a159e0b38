package bridgeevent

import (
	"fmt"

	"github.com/0xPolygon/bridgeledger/codec"
	"github.com/ethereum/go-ethereum/common"
)

// Log builds the SendETH log record the ETH app contract at emitter would emit
func (e *NativeTransfer) Log(emitter common.Address) (*codec.LogRecord, error) {
	recipient, err := codec.EncodeBytes(e.Recipient)
	if err != nil {
		return nil, err
	}
	data, err := sendETHEvent.Inputs.Pack(e.Sender, recipient, e.Amount.ToBig(), e.Nonce)
	if err != nil {
		return nil, fmt.Errorf("error packing SendETH: %w", err)
	}
	return &codec.LogRecord{
		Address: emitter,
		Topics:  []common.Hash{SendETHSignature},
		Data:    data,
	}, nil
}

// Log builds the SendERC20 log record the ERC20 app contract at emitter would emit
func (e *TokenTransfer) Log(emitter common.Address) (*codec.LogRecord, error) {
	recipient, err := codec.EncodeBytes(e.Recipient)
	if err != nil {
		return nil, err
	}
	data, err := sendERC20Event.Inputs.Pack(e.Sender, recipient, e.Token, e.Amount.ToBig(), e.Nonce)
	if err != nil {
		return nil, fmt.Errorf("error packing SendERC20: %w", err)
	}
	return &codec.LogRecord{
		Address: emitter,
		Topics:  []common.Hash{SendERC20Signature},
		Data:    data,
	}, nil
}

// Loggable is implemented by the events that can be encoded back into a log
type Loggable interface {
	Log(emitter common.Address) (*codec.LogRecord, error)
}

// EncodePayload encodes an event as the log record payload relayed in a
// signed message.
func EncodePayload(emitter common.Address, e Loggable) ([]byte, error) {
	l, err := e.Log(emitter)
	if err != nil {
		return nil, err
	}
	return codec.EncodeLog(l)
}
