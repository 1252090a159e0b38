package bridgeevent

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// appContractsABI holds the events emitted by the ETH and ERC20 app contracts
// on the foreign chain. No parameter is indexed, so every log carries a single
// topic: the event signature.
const appContractsABI = `[
	{
		"anonymous": false,
		"type": "event",
		"name": "SendETH",
		"inputs": [
			{"indexed": false, "name": "_sender", "type": "address"},
			{"indexed": false, "name": "_recipient", "type": "bytes"},
			{"indexed": false, "name": "_amount", "type": "uint256"},
			{"indexed": false, "name": "_nonce", "type": "uint64"}
		]
	},
	{
		"anonymous": false,
		"type": "event",
		"name": "SendERC20",
		"inputs": [
			{"indexed": false, "name": "_sender", "type": "address"},
			{"indexed": false, "name": "_recipient", "type": "bytes"},
			{"indexed": false, "name": "_tokenAddr", "type": "address"},
			{"indexed": false, "name": "_amount", "type": "uint256"},
			{"indexed": false, "name": "_nonce", "type": "uint64"}
		]
	}
]`

var (
	appABI         = mustParseABI(appContractsABI)
	sendETHEvent   = appABI.Events["SendETH"]
	sendERC20Event = appABI.Events["SendERC20"]

	// SendETHSignature is topic0 of SendETH(address,bytes,uint256,uint64)
	SendETHSignature = sendETHEvent.ID
	// SendERC20Signature is topic0 of SendERC20(address,bytes,address,uint256,uint64)
	SendERC20Signature = sendERC20Event.ID
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
