package attestation

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Attester signs payloads on behalf of a signer set. The key at position i
// signs as signer index i.
type Attester struct {
	keys []*ecdsa.PrivateKey
}

func NewAttester(keys ...*ecdsa.PrivateKey) *Attester {
	return &Attester{keys: keys}
}

// LoadAttester reads hex encoded private keys, one file per signer, in signer
// set order.
func LoadAttester(keyFiles []string) (*Attester, error) {
	keys := make([]*ecdsa.PrivateKey, 0, len(keyFiles))
	for _, f := range keyFiles {
		key, err := crypto.LoadECDSA(f)
		if err != nil {
			return nil, fmt.Errorf("error loading key %s: %w", f, err)
		}
		keys = append(keys, key)
	}
	return NewAttester(keys...), nil
}

// Signers returns the addresses of the keys in signer set order
func (a *Attester) Signers() []common.Address {
	addrs := make([]common.Address, 0, len(a.keys))
	for _, k := range a.keys {
		addrs = append(addrs, crypto.PubkeyToAddress(k.PublicKey))
	}
	return addrs
}

// Attest returns the encoded SignedMessage for payload, signed by the given
// signer indexes (all of them when none is given).
func (a *Attester) Attest(payload []byte, indexes ...uint8) ([]byte, error) {
	if len(indexes) == 0 {
		for i := range a.keys {
			indexes = append(indexes, uint8(i))
		}
	}
	digest := Digest(payload)
	msg := &SignedMessage{
		Payload:    payload,
		Signatures: make([]Signature, 0, len(indexes)),
	}
	for _, idx := range indexes {
		if int(idx) >= len(a.keys) {
			return nil, fmt.Errorf("no key for signer index %d", idx)
		}
		sig, err := crypto.Sign(digest.Bytes(), a.keys[idx])
		if err != nil {
			return nil, fmt.Errorf("error signing with key %d: %w", idx, err)
		}
		s := Signature{Index: idx}
		copy(s.Signature[:], sig)
		msg.Signatures = append(msg.Signatures, s)
	}
	return msg.Encode()
}
