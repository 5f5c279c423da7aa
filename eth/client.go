package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// StateReader is the part of a node's API needed to read genesis state
type StateReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Client wraps both rpc.Client and ethclient.Client for Ethereum interactions
type Client struct {
	Rpc *rpc.Client
	Eth *ethclient.Client
}

// NewClient dials url
func NewClient(ctx context.Context, url string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Client{
		Rpc: rpcClient,
		Eth: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying connection
func (c *Client) Close() {
	c.Eth.Close()
}
