package verifier

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
	mChain "github.com/footcaster/goapi/service/chain/mocks"
)

const (
	testChainId int32 = 8453

	testTxHash = domain.TxHash("0x70a1f2032d7e3b999f13bab1a6b0de45c3a1a5d7e8c6093e9e4b6b3154d3c214")
)

var (
	tokenAddress = domain.Address("0x00000000000000000000000000000000000000cc")
	fromAddress  = domain.Address("0x00000000000000000000000000000000000000aa")
	toAddress    = domain.Address("0x00000000000000000000000000000000000000bb")
)

type verifierSuite struct {
	suite.Suite

	ctx         bCtx.Ctx
	chainClient *mChain.Client
	verifier    Verifier
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(verifierSuite))
}

func (s *verifierSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.chainClient = &mChain.Client{}
	s.verifier = New(&Cfg{
		ChainClient:   s.chainClient,
		ChainId:       testChainId,
		TokenAddress:  tokenAddress,
		Confirmations: 3,
	})
}

func (s *verifierSuite) TearDownTest() {
	s.chainClient.AssertExpectations(s.T())
}

func transferLog(token, from, to domain.Address, amount *big.Int) *types.Log {
	return &types.Log{
		Address: common.HexToAddress(string(token)),
		Topics: []common.Hash{
			transferTopic,
			common.BytesToHash(common.HexToAddress(string(from)).Bytes()),
			common.BytesToHash(common.HexToAddress(string(to)).Bytes()),
		},
		Data: amount.Bytes(),
	}
}

func (s *verifierSuite) receiptWith(logs ...*types.Log) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(100),
		Logs:        logs,
	}
}

func (s *verifierSuite) expectReceipt(r *types.Receipt) {
	s.chainClient.On("TransactionReceipt", mock.Anything, testChainId, common.HexToHash(string(testTxHash))).
		Return(r, nil).Once()
}

func (s *verifierSuite) expectHead(n uint64) {
	s.chainClient.On("BlockNumber", mock.Anything, testChainId).Return(n, nil).Once()
}

func (s *verifierSuite) TestExactTransferPasses() {
	s.expectReceipt(s.receiptWith(transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(5000))))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.True(v.Valid)
}

func (s *verifierSuite) TestExactTransferAfterMismatchedTransferPasses() {
	s.expectReceipt(s.receiptWith(
		transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(1)),
		transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(5000)),
	))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.True(v.Valid)
}

func (s *verifierSuite) TestUnderpaymentByOneUnitFails() {
	s.expectReceipt(s.receiptWith(transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(4999))))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "amount mismatch")
}

func (s *verifierSuite) TestOverpaymentByOneUnitFails() {
	s.expectReceipt(s.receiptWith(transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(5001))))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "amount mismatch")
}

func (s *verifierSuite) TestWrongRecipientFails() {
	other := domain.Address("0x00000000000000000000000000000000000000dd")
	s.expectReceipt(s.receiptWith(transferLog(tokenAddress, fromAddress, other, big.NewInt(5000))))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "no matching token transfer")
}

func (s *verifierSuite) TestWrongTokenContractFails() {
	other := domain.Address("0x00000000000000000000000000000000000000dd")
	s.expectReceipt(s.receiptWith(transferLog(other, fromAddress, toAddress, big.NewInt(5000))))
	s.expectHead(103)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "no matching token transfer")
}

func (s *verifierSuite) TestRevertedTransactionFails() {
	s.expectReceipt(&types.Receipt{
		Status:      types.ReceiptStatusFailed,
		BlockNumber: big.NewInt(100),
	})

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "reverted")
}

func (s *verifierSuite) TestInsufficientConfirmationsFails() {
	s.expectReceipt(s.receiptWith(transferLog(tokenAddress, fromAddress, toAddress, big.NewInt(5000))))
	s.expectHead(102)

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "confirmations")
}

func (s *verifierSuite) TestMissingTransactionFails() {
	s.chainClient.On("TransactionReceipt", mock.Anything, testChainId, common.HexToHash(string(testTxHash))).
		Return(nil, ethereum.NotFound).Once()

	v, err := s.verifier.VerifyExactTransfer(s.ctx, testTxHash, fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.Contains(v.Detail, "not found")
}

func (s *verifierSuite) TestMalformedHashFailsWithoutChainCall() {
	v, err := s.verifier.VerifyExactTransfer(s.ctx, "0x1234", fromAddress, toAddress, big.NewInt(5000))
	s.NoError(err)
	s.False(v.Valid)
	s.chainClient.AssertNotCalled(s.T(), "TransactionReceipt", mock.Anything, mock.Anything, mock.Anything)
}
