package rpc

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// ChainReader is the node API the indexer depends on.
type ChainReader interface {
	GetLatestBlockHeight(ctx context.Context) (int64, error)
	IsCatchingUp(ctx context.Context) (bool, error)
	GetLogs(ctx context.Context, from, to int64, address common.Address, topics [][]common.Hash) ([]types.Log, error)
	GetBlockTimestamp(ctx context.Context, height int64) (int64, error)
	// GetTxRecipient returns nil for contract creation transactions.
	GetTxRecipient(ctx context.Context, hash common.Hash) (*common.Address, error)
}

// Client is a ChainReader over a JSON-RPC node, retrying every call with incremental backoff.
type Client struct {
	eth              *ethclient.Client
	RetryMaxAttempts int64
	RetryMaxWait     uint64
}

func Dial(ctx context.Context, rawURL string, retryMaxAttempts int64, retryMaxWait uint64) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", rawURL)
	}
	return &Client{eth: eth, RetryMaxAttempts: retryMaxAttempts, RetryMaxWait: retryMaxWait}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) GetLatestBlockHeight(ctx context.Context) (int64, error) {
	return withRetry(ctx, "eth_blockNumber", c.RetryMaxAttempts, c.RetryMaxWait, func(ctx context.Context) (int64, error) {
		height, err := c.eth.BlockNumber(ctx)
		return int64(height), err
	})
}

// IsCatchingUp true if the node is still syncing, false otherwise
func (c *Client) IsCatchingUp(ctx context.Context) (bool, error) {
	return withRetry(ctx, "eth_syncing", c.RetryMaxAttempts, c.RetryMaxWait, func(ctx context.Context) (bool, error) {
		progress, err := c.eth.SyncProgress(ctx)
		if err != nil {
			return false, err
		}
		return progress != nil, nil
	})
}

// GetLogs returns the contract logs matching topics in the inclusive block range.
func (c *Client) GetLogs(ctx context.Context, from, to int64, address common.Address, topics [][]common.Hash) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		FromBlock: big.NewInt(from),
		ToBlock:   big.NewInt(to),
		Addresses: []common.Address{address},
		Topics:    topics,
	}
	return withRetry(ctx, "eth_getLogs", c.RetryMaxAttempts, c.RetryMaxWait, func(ctx context.Context) ([]types.Log, error) {
		return c.eth.FilterLogs(ctx, query)
	})
}

func (c *Client) GetBlockTimestamp(ctx context.Context, height int64) (int64, error) {
	return withRetry(ctx, "eth_getBlockByNumber", c.RetryMaxAttempts, c.RetryMaxWait, func(ctx context.Context) (int64, error) {
		header, err := c.eth.HeaderByNumber(ctx, big.NewInt(height))
		if err != nil {
			return 0, err
		}
		return int64(header.Time), nil
	})
}

func (c *Client) GetTxRecipient(ctx context.Context, hash common.Hash) (*common.Address, error) {
	return withRetry(ctx, "eth_getTransactionByHash", c.RetryMaxAttempts, c.RetryMaxWait, func(ctx context.Context) (*common.Address, error) {
		tx, _, err := c.eth.TransactionByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		return tx.To(), nil
	})
}
