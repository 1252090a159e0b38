package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// ErrMalformedEncoding is returned for any input that is not a well formed
// encoding of the expected shape.
var ErrMalformedEncoding = errors.New("malformed encoding")

func malformed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedEncoding, what, err)
}

// Decoder reads typed values out of a single RLP encoded buffer. Every read is
// bounded by the buffer length, so a lying length prefix fails instead of
// allocating.
type Decoder struct {
	s *rlp.Stream
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{
		s: rlp.NewStream(bytes.NewReader(buf), uint64(len(buf))),
	}
}

// List enters the next list
func (d *Decoder) List() error {
	if _, err := d.s.List(); err != nil {
		return malformed("list", err)
	}
	return nil
}

// ListEnd leaves the current list, failing if it still holds items
func (d *Decoder) ListEnd() error {
	if err := d.s.ListEnd(); err != nil {
		return malformed("list end", err)
	}
	return nil
}

// More reports whether the current list has items left
func (d *Decoder) More() bool {
	return d.s.MoreDataInList()
}

func (d *Decoder) Bytes() ([]byte, error) {
	b, err := d.s.Bytes()
	if err != nil {
		return nil, malformed("byte string", err)
	}
	return b, nil
}

func (d *Decoder) Address() (common.Address, error) {
	var addr common.Address
	b, err := d.s.Bytes()
	if err != nil {
		return addr, malformed("address", err)
	}
	if len(b) != common.AddressLength {
		return addr, malformed("address", fmt.Errorf("got %d bytes, want %d", len(b), common.AddressLength))
	}
	copy(addr[:], b)
	return addr, nil
}

func (d *Decoder) Hash() (common.Hash, error) {
	var h common.Hash
	b, err := d.s.Bytes()
	if err != nil {
		return h, malformed("hash", err)
	}
	if len(b) != common.HashLength {
		return h, malformed("hash", fmt.Errorf("got %d bytes, want %d", len(b), common.HashLength))
	}
	copy(h[:], b)
	return h, nil
}

// HashList reads a list of 32 byte words
func (d *Decoder) HashList() ([]common.Hash, error) {
	if err := d.List(); err != nil {
		return nil, err
	}
	hashes := []common.Hash{}
	for d.More() {
		h, err := d.Hash()
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	if err := d.ListEnd(); err != nil {
		return nil, err
	}
	return hashes, nil
}

func (d *Decoder) Uint64() (uint64, error) {
	v, err := d.s.Uint64()
	if err != nil {
		return 0, malformed("uint64", err)
	}
	return v, nil
}

func (d *Decoder) Uint8() (uint8, error) {
	v, err := d.s.Uint8()
	if err != nil {
		return 0, malformed("uint8", err)
	}
	return v, nil
}

// Finish must be called once the top level value is read. It fails if the
// buffer holds anything after it.
func (d *Decoder) Finish() error {
	_, _, err := d.s.Kind()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return malformed("trailing data", rlp.ErrMoreThanOneValue)
	default:
		return malformed("trailing data", err)
	}
}

// DecodeBytes unwraps a buffer holding exactly one RLP byte string
func DecodeBytes(buf []byte) ([]byte, error) {
	d := NewDecoder(buf)
	b, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeBytes wraps b as a single RLP byte string
func EncodeBytes(b []byte) ([]byte, error) {
	return rlp.EncodeToBytes(b)
}
