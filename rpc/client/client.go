package rpc

// Client for the bridgeledger JSON-RPC server
type Client struct {
	url string
}

// NewClient returns a client for the server listening at url
func NewClient(url string) *Client {
	return &Client{url: url}
}
