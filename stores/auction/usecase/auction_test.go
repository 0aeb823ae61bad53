package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
	"github.com/footcaster/goapi/domain/account"
	mAccount "github.com/footcaster/goapi/domain/account/mocks"
	"github.com/footcaster/goapi/domain/auction"
	mAuction "github.com/footcaster/goapi/domain/auction/mocks"
	mTxledger "github.com/footcaster/goapi/domain/txledger/mocks"
	"github.com/footcaster/goapi/service/verifier"
	mVerifier "github.com/footcaster/goapi/service/verifier/mocks"
)

const (
	testTxHash = domain.TxHash("0x70a1f2032d7e3b999f13bab1a6b0de45c3a1a5d7e8c6093e9e4b6b3154d3c214")

	sellerFid domain.Fid = 100
	buyerFid  domain.Fid = 200
)

var (
	sellerWallet = domain.Address("0x00000000000000000000000000000000000000aa")
	buyerWallet  = domain.Address("0x00000000000000000000000000000000000000bb")
)

type auctionSuite struct {
	suite.Suite

	ctx         bCtx.Ctx
	auctionRepo *mAuction.Repo
	accountRepo *mAccount.Repo
	txLedger    *mTxledger.Repo
	verifier    *mVerifier.Verifier
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.auctionRepo = &mAuction.Repo{}
	s.accountRepo = &mAccount.Repo{}
	s.txLedger = &mTxledger.Repo{}
	s.verifier = &mVerifier.Verifier{}
}

func (s *auctionSuite) TearDownTest() {
	s.auctionRepo.AssertExpectations(s.T())
	s.accountRepo.AssertExpectations(s.T())
	s.txLedger.AssertExpectations(s.T())
	s.verifier.AssertExpectations(s.T())
}

func (s *auctionSuite) newUseCase(atomic bool) auction.UseCase {
	return New(&AuctionUseCaseCfg{
		AuctionRepo:        s.auctionRepo,
		AccountRepo:        s.accountRepo,
		TxLedger:           s.txLedger,
		Verifier:           s.verifier,
		AtomicApply:        atomic,
		MinIncrementBps:    200,
		AntiSnipeWindow:    5 * time.Minute,
		AntiSnipeExtension: 10 * time.Minute,
	})
}

func (s *auctionSuite) buyNowAuction() *auction.Auction {
	return &auction.Auction{
		Id:         "a-1",
		SellerFid:  sellerFid,
		ItemId:     "item-1",
		Status:     auction.StatusActive,
		ReserveWei: "1000",
		BuyNowWei:  "5000",
		EndsAt:     time.Now().Add(time.Hour),
	}
}

func (s *auctionSuite) sellerAccount() *account.Account {
	return &account.Account{Fid: sellerFid, Wallet: sellerWallet}
}

func (s *auctionSuite) expectValidTransfer(amount int64) {
	s.verifier.On("VerifyExactTransfer", mock.Anything, testTxHash, buyerWallet, sellerWallet, big.NewInt(amount)).
		Return(&verifier.Verification{Valid: true}, nil)
}

func (s *auctionSuite) TestPlaceBidAppliesCheckedUpdate() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.auctionRepo.On("PlaceBid", mock.Anything, "a-1", buyerFid, "1000", a.EndsAt, auction.PlaceBidCheck{
		PrevTopBidWei: "",
		PrevEndsAt:    a.EndsAt,
	}).Return(nil).Once()

	res, err := u.PlaceBid(s.ctx, "a-1", buyerFid, "1000")
	s.NoError(err)
	s.False(res.Extended)
	s.Equal(buyerFid, res.Auction.TopBidderFid)
	s.Equal("1000", res.Auction.TopBidWei)
}

func (s *auctionSuite) TestPlaceBidExtendsInsideAntiSnipeWindow() {
	a := s.buyNowAuction()
	a.EndsAt = time.Now().Add(2 * time.Minute)
	origEndsAt := a.EndsAt
	u := s.newUseCase(false)

	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.auctionRepo.On("PlaceBid", mock.Anything, "a-1", buyerFid, "1000", origEndsAt.Add(10*time.Minute), mock.Anything).
		Return(nil).Once()

	res, err := u.PlaceBid(s.ctx, "a-1", buyerFid, "1000")
	s.NoError(err)
	s.True(res.Extended)
	s.Equal(origEndsAt.Add(10*time.Minute), res.Auction.EndsAt)
}

func (s *auctionSuite) TestAntiSnipeDefaultsApplyWhenUnconfigured() {
	a := s.buyNowAuction()
	a.EndsAt = time.Now().Add(2 * time.Minute)
	origEndsAt := a.EndsAt
	u := New(&AuctionUseCaseCfg{
		AuctionRepo: s.auctionRepo,
		AccountRepo: s.accountRepo,
		TxLedger:    s.txLedger,
		Verifier:    s.verifier,
	})

	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.auctionRepo.On("PlaceBid", mock.Anything, "a-1", buyerFid, "1000", origEndsAt.Add(5*time.Minute), mock.Anything).
		Return(nil).Once()

	res, err := u.PlaceBid(s.ctx, "a-1", buyerFid, "1000")
	s.NoError(err)
	s.True(res.Extended)
	s.Equal(origEndsAt.Add(5*time.Minute), res.Auction.EndsAt)
}

func (s *auctionSuite) TestPlaceBidLostRaceRevalidates() {
	u := s.newUseCase(false)

	first := s.buyNowAuction()
	second := s.buyNowAuction()
	second.TopBidderFid = 300
	second.TopBidWei = "2000"

	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(first, nil).Once()
	s.auctionRepo.On("PlaceBid", mock.Anything, "a-1", buyerFid, "1000", mock.Anything, mock.Anything).
		Return(domain.ErrConflict).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(second, nil).Once()

	// 1000 was fine against the state it was validated on, but the racing
	// bid moved the floor
	_, err := u.PlaceBid(s.ctx, "a-1", buyerFid, "1000")
	s.ErrorIs(err, domain.ErrIncrementTooSmall)
}

func (s *auctionSuite) TestPlaceBidRejectsInvalidAmount() {
	u := s.newUseCase(false)

	_, err := u.PlaceBid(s.ctx, "a-1", buyerFid, "-5")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *auctionSuite) TestBuyNowTwoStep() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.expectValidTransfer(5000)
	s.txLedger.On("Mark", mock.Anything, testTxHash, buyerFid, "auctions/buy-now").Return(nil).Once()
	s.auctionRepo.On("BuyNow", mock.Anything, "a-1", buyerFid, "5000").Return(nil).Once()

	res, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.NoError(err)
	s.Equal(auction.StatusFinalized, res.Status)
	s.Equal(buyerFid, res.TopBidderFid)
}

func (s *auctionSuite) TestBuyNowAtomic() {
	a := s.buyNowAuction()
	u := s.newUseCase(true)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.expectValidTransfer(5000)
	s.auctionRepo.On("AtomicBuyNow", mock.Anything, testTxHash, buyerFid, "a-1", "5000").Return(nil).Once()

	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.NoError(err)
}

func (s *auctionSuite) TestBuyNowReplayShortCircuits() {
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(true, nil).Once()

	// the verifier must never be consulted for a consumed hash
	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrTxReplay)
	s.verifier.AssertNotCalled(s.T(), "VerifyExactTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestBuyNowRejectsMalformedHash() {
	u := s.newUseCase(false)

	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, "0x1234")
	s.ErrorIs(err, domain.ErrInvalidTxHash)
}

func (s *auctionSuite) TestBuyNowRejectsSeller() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()

	_, err := u.BuyNow(s.ctx, "a-1", sellerFid, sellerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrSelfPurchaseForbidden)
}

func (s *auctionSuite) TestBuyNowRequiresSellerWallet() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(&account.Account{Fid: sellerFid}, nil).Once()

	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrSellerWalletMissing)
}

func (s *auctionSuite) TestBuyNowRejectsInvalidPayment() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.verifier.On("VerifyExactTransfer", mock.Anything, testTxHash, buyerWallet, sellerWallet, big.NewInt(5000)).
		Return(&verifier.Verification{Valid: false, Detail: "amount mismatch"}, nil).Once()

	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrPaymentInvalid)
	s.auctionRepo.AssertNotCalled(s.T(), "BuyNow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestBuyNowUnavailableWithoutPrice() {
	a := s.buyNowAuction()
	a.BuyNowWei = ""
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()

	_, err := u.BuyNow(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrBuyNowUnavailable)
}

func (s *auctionSuite) awaitingAuction() *auction.Auction {
	a := s.buyNowAuction()
	a.Status = auction.StatusAwaitingPayment
	a.TopBidderFid = buyerFid
	a.TopBidWei = "3000"
	a.EndsAt = time.Now().Add(-time.Hour)
	return a
}

func (s *auctionSuite) TestFinalizeTwoStep() {
	a := s.awaitingAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.expectValidTransfer(3000)
	s.txLedger.On("Mark", mock.Anything, testTxHash, buyerFid, "auctions/finalize").Return(nil).Once()
	s.auctionRepo.On("Finalize", mock.Anything, "a-1", buyerFid).Return(nil).Once()

	res, err := u.Finalize(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.NoError(err)
	s.Equal(auction.StatusFinalized, res.Status)
}

func (s *auctionSuite) TestFinalizeAtomic() {
	a := s.awaitingAuction()
	u := s.newUseCase(true)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.expectValidTransfer(3000)
	s.auctionRepo.On("AtomicFinalize", mock.Anything, testTxHash, buyerFid, "a-1").Return(nil).Once()

	_, err := u.Finalize(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.NoError(err)
}

func (s *auctionSuite) TestFinalizeRejectsNonWinner() {
	a := s.awaitingAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()

	_, err := u.Finalize(s.ctx, "a-1", 999, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrNotWinner)
}

func (s *auctionSuite) TestFinalizeSweepsExpiredActiveAuction() {
	expired := s.buyNowAuction()
	expired.TopBidderFid = buyerFid
	expired.TopBidWei = "3000"
	expired.EndsAt = time.Now().Add(-time.Minute)

	swept := s.awaitingAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(expired, nil).Once()
	s.auctionRepo.On("MarkEnded", mock.Anything, "a-1").Return(nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(swept, nil).Once()
	s.accountRepo.On("Get", mock.Anything, sellerFid).Return(s.sellerAccount(), nil).Once()
	s.expectValidTransfer(3000)
	s.txLedger.On("Mark", mock.Anything, testTxHash, buyerFid, "auctions/finalize").Return(nil).Once()
	s.auctionRepo.On("Finalize", mock.Anything, "a-1", buyerFid).Return(nil).Once()

	_, err := u.Finalize(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.NoError(err)
}

func (s *auctionSuite) TestFinalizeRejectsActiveAuction() {
	a := s.buyNowAuction()
	u := s.newUseCase(false)

	s.txLedger.On("IsUsed", mock.Anything, testTxHash).Return(false, nil).Once()
	s.auctionRepo.On("FindOne", mock.Anything, "a-1").Return(a, nil).Once()

	_, err := u.Finalize(s.ctx, "a-1", buyerFid, buyerWallet, testTxHash)
	s.ErrorIs(err, domain.ErrNotAwaitingPayment)
}

func (s *auctionSuite) TestCreateRejectsBuyNowBelowReserve() {
	u := s.newUseCase(false)

	_, err := u.Create(s.ctx, sellerFid, "item-1", "1000", time.Hour, "999")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *auctionSuite) TestCreateDefaultsDuration() {
	u := s.newUseCase(false)

	s.auctionRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.SellerFid == sellerFid &&
			a.Status == auction.StatusActive &&
			a.EndsAt.Sub(a.CreatedAt) == 48*time.Hour
	})).Return(nil).Once()

	a, err := u.Create(s.ctx, sellerFid, "item-1", "1000", 0, "")
	s.NoError(err)
	s.NotEmpty(a.Id)
}

func (s *auctionSuite) TestGetActiveSweepsExpired() {
	u := s.newUseCase(false)

	live := s.buyNowAuction()
	expired := s.buyNowAuction()
	expired.Id = "a-2"
	expired.EndsAt = time.Now().Add(-time.Minute)

	s.auctionRepo.On("FindAll", mock.Anything, mock.Anything).
		Return([]*auction.Auction{live, expired}, nil).Once()
	s.auctionRepo.On("MarkEnded", mock.Anything, "a-2").Return(nil).Once()

	res, err := u.GetActive(s.ctx)
	s.NoError(err)
	s.Len(res, 1)
	s.Equal("a-1", res[0].Id)
}
