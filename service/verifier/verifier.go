package verifier

import (
	"math/big"

	bCtx "github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
)

// Verification is the verdict on a claimed token transfer. Detail carries a
// human-readable reason when Valid is false.
type Verification struct {
	Valid  bool
	Detail string
}

// Verifier confirms that a transaction contains an exact token transfer.
// It is read-only and idempotent: it never marks the hash as used, and
// repeated calls return the same verdict (a pending transaction may flip
// from invalid to valid as it gains confirmations, never the reverse).
type Verifier interface {
	// VerifyExactTransfer checks that txHash contains a transfer of the
	// payment token with from, to and amount all matching exactly. A 1-unit
	// difference in either direction fails.
	VerifyExactTransfer(c bCtx.Ctx, txHash domain.TxHash, from, to domain.Address, amount *big.Int) (*Verification, error)
}
