package attestation

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Signer is an entry of the signer set file
type Signer struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// SignerSet is the content of the signer set file. Order matters: the
// position of a signer is the index its signatures must carry.
//
//	signers:
//	  - name: relayer-0
//	    address: "0x..."
type SignerSet struct {
	Signers []Signer `yaml:"signers"`
}

func LoadSignerSet(path string) (*SignerSet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signer set: %w", err)
	}
	var set SignerSet
	if err := yaml.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("parse signer set %s: %w", path, err)
	}
	return &set, nil
}

func (s *SignerSet) Addresses() ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(s.Signers))
	for i, signer := range s.Signers {
		if !common.IsHexAddress(signer.Address) {
			return nil, fmt.Errorf("signer %d (%s): invalid address %q", i, signer.Name, signer.Address)
		}
		addrs = append(addrs, common.HexToAddress(signer.Address))
	}
	return addrs, nil
}
