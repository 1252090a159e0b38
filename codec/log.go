package codec

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// LogRecord is the consensus part of an EVM log: the emitting contract, the
// indexed topics and the opaque data blob. It is encoded as the RLP list
// [address, [topic, ...], data], the same layout go-ethereum uses for receipts.
type LogRecord struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// LogFromEth drops the derived fields of an EVM log
func LogFromEth(l types.Log) *LogRecord {
	return &LogRecord{
		Address: l.Address,
		Topics:  l.Topics,
		Data:    l.Data,
	}
}

// DecodeLog decodes a log record, rejecting wrong field sizes, truncated
// input and trailing bytes.
func DecodeLog(buf []byte) (*LogRecord, error) {
	d := NewDecoder(buf)
	if err := d.List(); err != nil {
		return nil, err
	}
	addr, err := d.Address()
	if err != nil {
		return nil, err
	}
	topics, err := d.HashList()
	if err != nil {
		return nil, err
	}
	data, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	if err := d.ListEnd(); err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return &LogRecord{
		Address: addr,
		Topics:  topics,
		Data:    data,
	}, nil
}

func EncodeLog(l *LogRecord) ([]byte, error) {
	return rlp.EncodeToBytes(l)
}
