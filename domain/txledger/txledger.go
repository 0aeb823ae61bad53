package txledger

import (
	"time"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/domain"
)

// Usage records the consumption of an on-chain transaction hash by a
// settlement operation. The store keeps a unique index on TxHash, so a given
// hash has at most one usage record for the lifetime of the system.
type Usage struct {
	TxHash    domain.TxHash `json:"txHash" bson:"txHash"`
	UsedBy    domain.Fid    `json:"usedBy" bson:"usedBy"`
	Context   string        `json:"context" bson:"context"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	// IsUsed reports whether the hash already has a usage record. Pairing
	// IsUsed with Mark leaves a race window between check and mark; callers
	// relying on that pairing must also be protected by an entity-level
	// only-once constraint on the mutation they guard.
	IsUsed(c ctx.Ctx, hash domain.TxHash) (bool, error)
	// Mark records the usage. A hash that is already marked returns
	// domain.ErrTxReplay, which makes Mark alone a safe at-most-once gate.
	Mark(c ctx.Ctx, hash domain.TxHash, usedBy domain.Fid, context string) error
}
