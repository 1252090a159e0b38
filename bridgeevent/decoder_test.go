package bridgeevent

import (
	"math/big"
	"testing"

	"github.com/0xPolygon/bridgeledger/codec"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	ethApp    = common.HexToAddress("0xfc97a6197dc90bef6bbefd672742ed75e9768553")
	erc20App  = common.HexToAddress("0xeda338e4dc46038493b885327842fd3e301cab39")
	sender    = common.HexToAddress("0xcffeaaf7681c89285d65cfbe808b80e502696573")
	token     = common.HexToAddress("0x774667629726ec1fabebcec0d9139bd1c8f72a23")
	recipient = common.FromHex("0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d")
)

func TestSignatures(t *testing.T) {
	require.Equal(t, crypto.Keccak256Hash([]byte("SendETH(address,bytes,uint256,uint64)")), SendETHSignature)
	require.Equal(t, crypto.Keccak256Hash([]byte("SendERC20(address,bytes,address,uint256,uint64)")), SendERC20Signature)
}

func TestDecodeNativeTransfer(t *testing.T) {
	expected := &NativeTransfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    uint256.NewInt(500),
		Nonce:     7,
	}
	payload, err := EncodePayload(ethApp, expected)
	require.NoError(t, err)

	ev, err := NewDecoder(ethApp).Decode(payload)
	require.NoError(t, err)
	require.Equal(t, expected, ev)
	require.Equal(t, "SendETH", ev.Name())
}

func TestDecodeTokenTransfer(t *testing.T) {
	maxAmount := new(uint256.Int).SetAllOne()
	expected := &TokenTransfer{
		Sender:    sender,
		Recipient: recipient,
		Token:     token,
		Amount:    maxAmount,
		Nonce:     1,
	}
	payload, err := EncodePayload(erc20App, expected)
	require.NoError(t, err)

	ev, err := NewDecoder(erc20App).Decode(payload)
	require.NoError(t, err)
	require.Equal(t, expected, ev)
}

func TestDecodeUnrecognized(t *testing.T) {
	unknownTopic := crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	testCases := []struct {
		name   string
		topics []common.Hash
		topic  common.Hash
	}{
		{name: "unknown topic", topics: []common.Hash{unknownTopic, common.HexToHash("0x01")}, topic: unknownTopic},
		{name: "no topics", topics: []common.Hash{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := codec.EncodeLog(&codec.LogRecord{Address: ethApp, Topics: tc.topics, Data: []byte{1, 2, 3}})
			require.NoError(t, err)
			ev, err := NewDecoder(ethApp).Decode(payload)
			require.NoError(t, err)
			require.Equal(t, &Unrecognized{Topic: tc.topic}, ev)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid, err := (&NativeTransfer{Sender: sender, Recipient: recipient, Amount: uint256.NewInt(1)}).Log(ethApp)
	require.NoError(t, err)

	notWrapped, err := sendETHEvent.Inputs.Pack(sender, recipient[:5], big.NewInt(1), uint64(0))
	require.NoError(t, err)

	testCases := []struct {
		name   string
		log    *codec.LogRecord
		raw    []byte
		expErr error
	}{
		{
			name:   "not a log record",
			raw:    []byte{0x01, 0x02},
			expErr: codec.ErrMalformedEncoding,
		},
		{
			name:   "other emitter",
			log:    &codec.LogRecord{Address: erc20App, Topics: valid.Topics, Data: valid.Data},
			expErr: ErrUnexpectedEmitter,
		},
		{
			name:   "truncated abi data",
			log:    &codec.LogRecord{Address: ethApp, Topics: valid.Topics, Data: valid.Data[:40]},
			expErr: ErrDecode,
		},
		{
			name:   "extra topic",
			log:    &codec.LogRecord{Address: ethApp, Topics: append(append([]common.Hash{}, valid.Topics...), common.Hash{}), Data: valid.Data},
			expErr: ErrDecode,
		},
		{
			name:   "recipient not rlp wrapped",
			log:    &codec.LogRecord{Address: ethApp, Topics: valid.Topics, Data: notWrapped},
			expErr: codec.ErrMalformedEncoding,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := tc.raw
			if tc.log != nil {
				raw, err = codec.EncodeLog(tc.log)
				require.NoError(t, err)
			}
			ev, err := NewDecoder(ethApp).Decode(raw)
			require.ErrorIs(t, err, ErrDecode)
			require.ErrorIs(t, err, tc.expErr)
			require.Nil(t, ev)
		})
	}
}
