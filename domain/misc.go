package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"golang.org/x/xerrors"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Fid is the platform identity of a user
type Fid int64

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func (a Address) IsValid() bool {
	return addressPattern.MatchString(string(a))
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TxHash is an on-chain transaction hash, used as payment proof and
// replay-protection key
type TxHash string

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

func (h TxHash) IsValid() bool {
	return txHashPattern.MatchString(string(h))
}

// ParseWei parses a base-10 integer amount in the token's smallest unit.
// Negative or malformed amounts are rejected.
func ParseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, xerrors.Errorf("parse wei %q: %w", s, ErrInvalidNumberFormat)
	}
	return v, nil
}

type Table string

const (
	TableAuctions  Table = "auctions"
	TableListings  Table = "listings"
	TableAccounts  Table = "accounts"
	TableTxUsages  Table = "tx_usages"
	TableHeartBeat Table = "heart_beat"
)

func (t Table) String() string {
	return string(t)
}

func Stringify(v interface{}) string {
	return fmt.Sprintf("%+v", v)
}
