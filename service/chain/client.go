package chain

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

type ClientCfg struct {
	RpcUrls map[int32]string
}

// Client is a thin read-only boundary over the chain of record. It is the
// oracle the payment verifier consults; nothing here mutates chain state.
type Client interface {
	TransactionReceipt(c bCtx.Ctx, chainId int32, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(c bCtx.Ctx, chainId int32) (uint64, error)
}

type clientImpl struct {
	clients map[int32]*ethclient.Client
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	return &clientImpl{
		clients: clients,
	}, anyerr
}

func (c *clientImpl) TransactionReceipt(ctx bCtx.Ctx, chainId int32, txHash common.Hash) (*types.Receipt, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}
	return client.TransactionReceipt(ctx, txHash)
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx, chainId int32) (uint64, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return 0, ErrUnsupportedChain
	}
	return client.BlockNumber(ctx)
}
