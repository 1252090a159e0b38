package attestation

import (
	"fmt"

	"github.com/0xPolygon/bridgeledger/codec"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iden3/go-iden3-crypto/keccak256"
)

// Signature is a recoverable secp256k1 signature over the payload digest,
// made by the signer at Index in the configured signer set.
type Signature struct {
	Index     uint8
	Signature [crypto.SignatureLength]byte
}

// SignedMessage is the envelope relayed from the foreign chain. Payload is an
// encoded log record. On the wire it is [payload, [[index, signature], ...]].
type SignedMessage struct {
	Payload    []byte
	Signatures []Signature
}

// Digest returns the hash every signer signs. It also identifies the message
// for replay protection.
func Digest(payload []byte) common.Hash {
	return common.BytesToHash(keccak256.Hash(payload))
}

func (m *SignedMessage) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(m)
}

// DecodeSignedMessage decodes the envelope, failing with
// codec.ErrMalformedEncoding on any structural problem.
func DecodeSignedMessage(raw []byte) (*SignedMessage, error) {
	d := codec.NewDecoder(raw)
	if err := d.List(); err != nil {
		return nil, err
	}
	payload, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	if err := d.List(); err != nil {
		return nil, err
	}
	sigs := []Signature{}
	for d.More() {
		sig, err := decodeSignature(d)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	if err := d.ListEnd(); err != nil {
		return nil, err
	}
	if err := d.ListEnd(); err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return &SignedMessage{
		Payload:    payload,
		Signatures: sigs,
	}, nil
}

func decodeSignature(d *codec.Decoder) (Signature, error) {
	var sig Signature
	if err := d.List(); err != nil {
		return sig, err
	}
	index, err := d.Uint8()
	if err != nil {
		return sig, err
	}
	raw, err := d.Bytes()
	if err != nil {
		return sig, err
	}
	if len(raw) != crypto.SignatureLength {
		return sig, fmt.Errorf("%w: signature: got %d bytes, want %d",
			codec.ErrMalformedEncoding, len(raw), crypto.SignatureLength)
	}
	if err := d.ListEnd(); err != nil {
		return sig, err
	}
	sig.Index = index
	copy(sig.Signature[:], raw)
	return sig, nil
}
