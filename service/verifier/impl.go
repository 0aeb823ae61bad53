package verifier

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/log"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/service/chain"
)

// transferTopic is keccak256("Transfer(address,address,uint256)")
var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

type Cfg struct {
	ChainClient chain.Client
	ChainId     int32
	// TokenAddress is the payment token contract whose Transfer events count
	// as payment
	TokenAddress domain.Address
	// Confirmations is the depth a transaction must reach before it is
	// considered final
	Confirmations uint64
}

type impl struct {
	chainClient   chain.Client
	chainId       int32
	tokenAddress  common.Address
	confirmations uint64
}

func New(cfg *Cfg) Verifier {
	return &impl{
		chainClient:   cfg.ChainClient,
		chainId:       cfg.ChainId,
		tokenAddress:  common.HexToAddress(string(cfg.TokenAddress)),
		confirmations: cfg.Confirmations,
	}
}

func (im *impl) VerifyExactTransfer(c bCtx.Ctx, txHash domain.TxHash, from, to domain.Address, amount *big.Int) (*Verification, error) {
	if !txHash.IsValid() {
		return &Verification{Valid: false, Detail: "malformed transaction hash"}, nil
	}

	receipt, err := im.chainClient.TransactionReceipt(c, im.chainId, common.HexToHash(string(txHash)))
	if err == ethereum.NotFound {
		return &Verification{Valid: false, Detail: "transaction not found"}, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"txHash": txHash,
		}).Error("chainClient.TransactionReceipt failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrVerificationTimeout
		}
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return &Verification{Valid: false, Detail: "transaction reverted"}, nil
	}

	head, err := im.chainClient.BlockNumber(c, im.chainId)
	if err != nil {
		c.WithField("err", err).Error("chainClient.BlockNumber failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrVerificationTimeout
		}
		return nil, err
	}
	if head < receipt.BlockNumber.Uint64()+im.confirmations {
		return &Verification{Valid: false, Detail: "insufficient confirmations"}, nil
	}

	fromAddr := common.HexToAddress(string(from))
	toAddr := common.HexToAddress(string(to))

	// a transaction may carry several transfers between the same pair, any
	// one matching the exact amount counts
	detail := "no matching token transfer in transaction"
	for _, lg := range receipt.Logs {
		if !im.matchesTransfer(lg, fromAddr, toAddr) {
			continue
		}
		transferred := new(big.Int).SetBytes(lg.Data)
		if transferred.Cmp(amount) == 0 {
			return &Verification{Valid: true}, nil
		}
		// exact match only, both under- and overpayment are rejected
		detail = "transfer amount mismatch: expected " + amount.String() + ", got " + transferred.String()
	}

	return &Verification{Valid: false, Detail: detail}, nil
}

func (im *impl) matchesTransfer(lg *types.Log, from, to common.Address) bool {
	if !strings.EqualFold(lg.Address.Hex(), im.tokenAddress.Hex()) {
		return false
	}
	if len(lg.Topics) != 3 || lg.Topics[0] != transferTopic {
		return false
	}
	return common.BytesToAddress(lg.Topics[1].Bytes()) == from &&
		common.BytesToAddress(lg.Topics[2].Bytes()) == to
}
