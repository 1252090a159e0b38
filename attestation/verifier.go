package attestation

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrVerificationFailure is returned whenever a message does not carry a valid
// attestation, including when it cannot be decoded at all.
var ErrVerificationFailure = errors.New("verification failure")

// Config of the message verifier
type Config struct {
	// SignerSetPath is the YAML file listing the addresses allowed to attest messages
	SignerSetPath string `mapstructure:"SignerSetPath"`
	// Threshold is the minimum number of valid signatures a message needs.
	// 0 means a two thirds quorum of the signer set
	Threshold int `mapstructure:"Threshold"`
}

// CalculateQuorum returns the minimum number of signatures required for a
// signer set of numSigners.
func CalculateQuorum(numSigners int) int {
	return (numSigners*2)/3 + 1 //nolint:mnd
}

// Verifier checks that a raw message was attested by enough members of a
// fixed signer set. It holds no mutable state.
type Verifier struct {
	signers   []common.Address
	threshold int
}

// NewVerifier builds a verifier for signers. A threshold of 0 selects the
// default quorum. An empty signer set is accepted and rejects every message.
func NewVerifier(signers []common.Address, threshold int) (*Verifier, error) {
	if len(signers) > 256 { //nolint:mnd
		return nil, fmt.Errorf("signer set too large: %d", len(signers))
	}
	seen := make(map[common.Address]struct{}, len(signers))
	for _, s := range signers {
		if _, ok := seen[s]; ok {
			return nil, fmt.Errorf("duplicated signer %s", s.Hex())
		}
		seen[s] = struct{}{}
	}
	if threshold < 0 || threshold > len(signers) {
		return nil, fmt.Errorf("threshold %d out of range for %d signers", threshold, len(signers))
	}
	if threshold == 0 {
		threshold = CalculateQuorum(len(signers))
	}
	return &Verifier{
		signers:   append([]common.Address{}, signers...),
		threshold: threshold,
	}, nil
}

// NewVerifierFromConfig loads the signer set file and builds the verifier
func NewVerifierFromConfig(cfg Config) (*Verifier, error) {
	set, err := LoadSignerSet(cfg.SignerSetPath)
	if err != nil {
		return nil, err
	}
	addrs, err := set.Addresses()
	if err != nil {
		return nil, err
	}
	return NewVerifier(addrs, cfg.Threshold)
}

func (v *Verifier) Threshold() int {
	return v.threshold
}

// Verify decodes raw as a SignedMessage and returns its payload if, and only
// if, it is signed by at least Threshold distinct members of the signer set.
// Signatures must be ordered by strictly increasing signer index.
func (v *Verifier) Verify(raw []byte) ([]byte, error) {
	msg, err := DecodeSignedMessage(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailure, err)
	}
	if len(v.signers) == 0 {
		return nil, fmt.Errorf("%w: empty signer set", ErrVerificationFailure)
	}
	if len(msg.Signatures) < v.threshold {
		return nil, fmt.Errorf("%w: %d signatures, need %d",
			ErrVerificationFailure, len(msg.Signatures), v.threshold)
	}

	digest := Digest(msg.Payload)
	lastIndex := -1
	for _, sig := range msg.Signatures {
		idx := int(sig.Index)
		if idx <= lastIndex {
			return nil, fmt.Errorf("%w: signature index %d not in increasing order", ErrVerificationFailure, idx)
		}
		lastIndex = idx
		if idx >= len(v.signers) {
			return nil, fmt.Errorf("%w: signature index %d out of signer set", ErrVerificationFailure, idx)
		}
		signer, err := recoverSigner(digest, sig.Signature)
		if err != nil {
			return nil, fmt.Errorf("%w: signature %d: %w", ErrVerificationFailure, idx, err)
		}
		if signer != v.signers[idx] {
			return nil, fmt.Errorf("%w: signature %d recovers %s, expected %s",
				ErrVerificationFailure, idx, signer.Hex(), v.signers[idx].Hex())
		}
	}
	return msg.Payload, nil
}

func recoverSigner(digest common.Hash, sig [crypto.SignatureLength]byte) (common.Address, error) {
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[64], r, s, true) {
		return common.Address{}, errors.New("invalid signature values")
	}
	pubKey, err := crypto.Ecrecover(digest.Bytes(), sig[:])
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(crypto.Keccak256(pubKey[1:])[12:]), nil
}
