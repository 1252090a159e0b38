package bridgeevent

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/0xPolygon/bridgeledger/codec"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	// ErrDecode is returned when a payload cannot be turned into an Event
	ErrDecode = errors.New("failed to decode event")
	// ErrUnexpectedEmitter is returned for logs not emitted by the expected contract
	ErrUnexpectedEmitter = fmt.Errorf("%w: unexpected emitter", ErrDecode)
)

type logParser func(l *codec.LogRecord) (Event, error)

// Decoder turns encoded log records emitted by a single app contract into
// typed events.
type Decoder struct {
	emitter common.Address
	parsers map[common.Hash]logParser
}

func NewDecoder(emitter common.Address) *Decoder {
	d := &Decoder{
		emitter: emitter,
		parsers: make(map[common.Hash]logParser),
	}
	d.parsers[SendETHSignature] = parseSendETH
	d.parsers[SendERC20Signature] = parseSendERC20
	return d
}

func (d *Decoder) Emitter() common.Address {
	return d.emitter
}

// Decode decodes payload as a log record and then as an app event.
func (d *Decoder) Decode(payload []byte) (Event, error) {
	l, err := codec.DecodeLog(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return d.DecodeLog(l)
}

// DecodeLog maps a log record to an event. Logs with no topics or an unknown
// topic0 decode to *Unrecognized.
func (d *Decoder) DecodeLog(l *codec.LogRecord) (Event, error) {
	if l.Address != d.emitter {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedEmitter, l.Address.Hex(), d.emitter.Hex())
	}
	if len(l.Topics) == 0 {
		return &Unrecognized{}, nil
	}
	parse, ok := d.parsers[l.Topics[0]]
	if !ok {
		return &Unrecognized{Topic: l.Topics[0]}, nil
	}
	return parse(l)
}

func unpack(event abi.Event, l *codec.LogRecord) ([]interface{}, error) {
	if len(l.Topics) != 1 {
		return nil, fmt.Errorf("%w: %s expects 1 topic, got %d", ErrDecode, event.Name, len(l.Topics))
	}
	values, err := event.Inputs.Unpack(l.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: error unpacking %s data: %w", ErrDecode, event.Name, err)
	}
	return values, nil
}

func parseSendETH(l *codec.LogRecord) (Event, error) {
	values, err := unpack(sendETHEvent, l)
	if err != nil {
		return nil, err
	}
	recipient, err := unwrapRecipient(values[1].([]byte))
	if err != nil {
		return nil, err
	}
	amount, err := toUint256(values[2].(*big.Int))
	if err != nil {
		return nil, err
	}
	return &NativeTransfer{
		Sender:    values[0].(common.Address),
		Recipient: recipient,
		Amount:    amount,
		Nonce:     values[3].(uint64),
	}, nil
}

func parseSendERC20(l *codec.LogRecord) (Event, error) {
	values, err := unpack(sendERC20Event, l)
	if err != nil {
		return nil, err
	}
	recipient, err := unwrapRecipient(values[1].([]byte))
	if err != nil {
		return nil, err
	}
	amount, err := toUint256(values[3].(*big.Int))
	if err != nil {
		return nil, err
	}
	return &TokenTransfer{
		Sender:    values[0].(common.Address),
		Recipient: recipient,
		Token:     values[2].(common.Address),
		Amount:    amount,
		Nonce:     values[4].(uint64),
	}, nil
}

// the recipient travels as an RLP byte string inside the ABI bytes field
func unwrapRecipient(wrapped []byte) ([]byte, error) {
	recipient, err := codec.DecodeBytes(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient: %w", ErrDecode, err)
	}
	return recipient, nil
}

func toUint256(b *big.Int) (*uint256.Int, error) {
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: amount %s overflows 256 bits", ErrDecode, b)
	}
	return v, nil
}
