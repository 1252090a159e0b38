package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type BridgeClientInterface interface {
	SubmitMessage(appID bridge.AppID, message []byte) (common.Hash, error)
	IsProcessed(messageID common.Hash) (bool, error)
	GetBalance(asset common.Address, who account.ID) (*uint256.Int, error)
	GetTotalIssuance(asset common.Address) (*uint256.Int, error)
}

var _ BridgeClientInterface = (*Client)(nil)

// SubmitMessage sends a signed message relayed from the foreign chain for the
// application appID, returning the id of the applied message
func (c *Client) SubmitMessage(appID bridge.AppID, message []byte) (common.Hash, error) {
	response, err := rpc.JSONRPCCall(c.url, "bridge_submitMessage", appID, hexutil.Bytes(message))
	if err != nil {
		return common.Hash{}, err
	}
	if response.Error != nil {
		return common.Hash{}, fmt.Errorf("%v %v", response.Error.Code, response.Error.Message)
	}
	var result common.Hash
	return result, json.Unmarshal(response.Result, &result)
}

func (c *Client) IsProcessed(messageID common.Hash) (bool, error) {
	response, err := rpc.JSONRPCCall(c.url, "bridge_isProcessed", messageID)
	if err != nil {
		return false, err
	}
	if response.Error != nil {
		return false, fmt.Errorf("%v %v", response.Error.Code, response.Error.Message)
	}
	var result bool
	return result, json.Unmarshal(response.Result, &result)
}

// GetBalance returns the balance of who for asset, the zero address being the native asset
func (c *Client) GetBalance(asset common.Address, who account.ID) (*uint256.Int, error) {
	response, err := rpc.JSONRPCCall(c.url, "bridge_getBalance", asset, who)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("%v %v", response.Error.Code, response.Error.Message)
	}
	var result hexutil.U256
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return nil, err
	}
	return (*uint256.Int)(&result), nil
}

func (c *Client) GetTotalIssuance(asset common.Address) (*uint256.Int, error) {
	response, err := rpc.JSONRPCCall(c.url, "bridge_getTotalIssuance", asset)
	if err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("%v %v", response.Error.Code, response.Error.Message)
	}
	var result hexutil.U256
	if err := json.Unmarshal(response.Result, &result); err != nil {
		return nil, err
	}
	return (*uint256.Int)(&result), nil
}
