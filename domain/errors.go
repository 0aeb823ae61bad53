package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidTxHash       = errors.New("invalid transaction hash")

	// bid validation, first failing check wins
	ErrAuctionClosed     = errors.New("auction is closed")
	ErrSelfBidForbidden  = errors.New("cannot bid on own auction")
	ErrBelowReserve      = errors.New("bid is below reserve amount")
	ErrIncrementTooSmall = errors.New("bid increment is too small")
	ErrUseBuyNowFlow     = errors.New("bid meets buy-now price, use the buy-now flow")

	// settlement
	ErrEntityNotActive       = errors.New("entity is not active")
	ErrSelfPurchaseForbidden = errors.New("cannot buy own item")
	ErrSellerWalletMissing   = errors.New("seller has no linked wallet")
	ErrBuyerWalletMissing    = errors.New("buyer has no linked wallet")
	ErrTxReplay              = errors.New("transaction hash already used")
	ErrPaymentInvalid        = errors.New("payment verification failed")
	ErrNotWinner             = errors.New("only the winning bidder can finalize")
	ErrNotAwaitingPayment    = errors.New("auction is not awaiting payment")
	ErrNoWinningBid          = errors.New("auction has no winning bid")
	ErrBuyNowUnavailable     = errors.New("buy-now is not available for this auction")

	// quote
	ErrPriceUnavailable = errors.New("price unavailable from every source")
	ErrInvalidPriceData = errors.New("invalid price data")

	// external boundaries
	ErrVerificationTimeout = errors.New("payment verification timed out")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)
