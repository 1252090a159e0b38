package codec

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogMatchesGethEncoding(t *testing.T) {
	ethLog := types.Log{
		Address: common.HexToAddress("0xfc97a6197dc90bef6bbefd672742ed75e9768553"),
		Topics: []common.Hash{
			common.HexToHash("0x01"),
			common.HexToHash("0x02"),
		},
		Data:        []byte{0xde, 0xad, 0xbe, 0xef},
		BlockNumber: 42,
	}
	encoded, err := rlp.EncodeToBytes(&ethLog)
	require.NoError(t, err)

	decoded, err := DecodeLog(encoded)
	require.NoError(t, err)
	require.Equal(t, LogFromEth(ethLog), decoded)

	reencoded, err := EncodeLog(decoded)
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestDecodeLogNoTopics(t *testing.T) {
	encoded, err := EncodeLog(&LogRecord{Address: common.HexToAddress("0x01"), Topics: []common.Hash{}})
	require.NoError(t, err)

	decoded, err := DecodeLog(encoded)
	require.NoError(t, err)
	require.Empty(t, decoded.Topics)
	require.Empty(t, decoded.Data)
}

func TestDecodeLogMalformed(t *testing.T) {
	valid, err := EncodeLog(&LogRecord{
		Address: common.HexToAddress("0x01"),
		Topics:  []common.Hash{common.HexToHash("0x02")},
		Data:    []byte("payload"),
	})
	require.NoError(t, err)

	shortAddr, err := rlp.EncodeToBytes([]interface{}{make([]byte, 19), []common.Hash{}, []byte{}})
	require.NoError(t, err)
	shortTopic, err := rlp.EncodeToBytes([]interface{}{common.Address{}, [][]byte{make([]byte, 31)}, []byte{}})
	require.NoError(t, err)
	extraField, err := rlp.EncodeToBytes([]interface{}{common.Address{}, []common.Hash{}, []byte{}, uint64(1)})
	require.NoError(t, err)
	missingData, err := rlp.EncodeToBytes([]interface{}{common.Address{}, []common.Hash{}})
	require.NoError(t, err)
	notAList, err := rlp.EncodeToBytes([]byte("hello"))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: nil},
		{name: "truncated", input: valid[:len(valid)-1]},
		{name: "trailing byte", input: append(append([]byte{}, valid...), 0x00)},
		{name: "short address", input: shortAddr},
		{name: "short topic", input: shortTopic},
		{name: "extra field", input: extraField},
		{name: "missing data", input: missingData},
		{name: "not a list", input: notAList},
		{name: "length prefix past end", input: []byte{0xf9, 0xff, 0xff}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeLog(tc.input)
			require.ErrorIs(t, err, ErrMalformedEncoding)
			require.Nil(t, decoded)
		})
	}
}

func TestNestedBytes(t *testing.T) {
	recipient := common.HexToHash("0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d").Bytes()
	wrapped, err := EncodeBytes(recipient)
	require.NoError(t, err)

	unwrapped, err := DecodeBytes(wrapped)
	require.NoError(t, err)
	require.Equal(t, recipient, unwrapped)

	_, err = DecodeBytes(append(wrapped, 0x01))
	require.ErrorIs(t, err, ErrMalformedEncoding)

	_, err = DecodeBytes(wrapped[:10])
	require.ErrorIs(t, err, ErrMalformedEncoding)

	list, err := rlp.EncodeToBytes([][]byte{recipient})
	require.NoError(t, err)
	_, err = DecodeBytes(list)
	require.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestDecoderScalars(t *testing.T) {
	buf, err := rlp.EncodeToBytes([]interface{}{uint8(3), uint64(1 << 40)})
	require.NoError(t, err)

	d := NewDecoder(buf)
	require.NoError(t, d.List())
	small, err := d.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(3), small)
	big, err := d.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), big)
	require.False(t, d.More())
	require.NoError(t, d.ListEnd())
	require.NoError(t, d.Finish())
}
