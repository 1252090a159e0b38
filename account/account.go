package account

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// IDLength is the size in bytes of a local account identifier
const IDLength = 32

// ErrInvalidRecipient is returned when a foreign recipient cannot be mapped to
// a local account.
var ErrInvalidRecipient = errors.New("invalid recipient")

// ID identifies a local account
type ID [IDLength]byte

func (id ID) Bytes() []byte { return id[:] }

func (id ID) Hex() string { return hexutil.Encode(id[:]) }

func (id ID) String() string { return id.Hex() }

// MarshalText encodes the id as 0x prefixed hex
func (id ID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id[:]).MarshalText()
}

// UnmarshalText decodes a 0x prefixed hex id of exactly IDLength bytes
func (id *ID) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("ID", input, id[:])
}

// Resolver maps the raw recipient bytes carried by a foreign event to a local
// account.
type Resolver interface {
	Resolve(recipient []byte) (ID, error)
}

// ResolverFunc adapts a function to a Resolver
type ResolverFunc func(recipient []byte) (ID, error)

func (f ResolverFunc) Resolve(recipient []byte) (ID, error) {
	return f(recipient)
}

// FixedLengthResolver accepts recipients that are exactly an encoded ID
type FixedLengthResolver struct{}

func (FixedLengthResolver) Resolve(recipient []byte) (ID, error) {
	return FromBytes(recipient)
}

// FromBytes converts b into an ID, failing unless it has exactly IDLength bytes
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLength {
		return id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidRecipient, len(b), IDLength)
	}
	copy(id[:], b)
	return id, nil
}

// FromHex parses a 0x prefixed hex account id
func FromHex(s string) (ID, error) {
	var id ID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return id, fmt.Errorf("%w: %w", ErrInvalidRecipient, err)
	}
	return id, nil
}
