// Package vesting implements the virtual-clock accrual model of a token record.
//
// A record vests continuously at the realm's daily rate from its last claim
// point. Claims advance the claim point only by the time-equivalent of the
// amount granted, so several partial claims at the same instant share one
// accrual window.
package vesting

import (
	"math"
	"math/big"

	"github.com/feral-file/ff-infusion/internal/domain"
)

var secondsPerDay = big.NewInt(domain.SECONDS_PER_DAY)

// Accrued returns dailyRate * (now - lastClaimAt) / 86400, floored.
// A claim point in the future yields zero.
func Accrued(dailyRate *big.Int, lastClaimAt, now int64) *big.Int {
	if now <= lastClaimAt || dailyRate.Sign() <= 0 {
		return new(big.Int)
	}
	elapsed := new(big.Int).Sub(big.NewInt(now), big.NewInt(lastClaimAt))
	accrued := new(big.Int).Mul(dailyRate, elapsed)
	return accrued.Quo(accrued, secondsPerDay)
}

// Claimable returns min(accrued, balance)
func Claimable(dailyRate, balance *big.Int, lastClaimAt, now int64) *big.Int {
	accrued := Accrued(dailyRate, lastClaimAt, now)
	if accrued.Cmp(balance) > 0 {
		return new(big.Int).Set(balance)
	}
	return accrued
}

// Grant returns min(requested, claimable)
func Grant(requested, claimable *big.Int) *big.Int {
	if requested.Cmp(claimable) < 0 {
		return new(big.Int).Set(requested)
	}
	return new(big.Int).Set(claimable)
}

// Advance returns the claim point after granting amount:
// lastClaimAt + ceil(amount * 86400 / dailyRate).
// Rounding up keeps every grant paid for by at least one second of accrual.
// For amount <= Accrued(dailyRate, lastClaimAt, now) the result is still <= now.
func Advance(lastClaimAt int64, amount, dailyRate *big.Int) int64 {
	if dailyRate.Sign() <= 0 || amount.Sign() <= 0 {
		return lastClaimAt
	}
	return addSeconds(lastClaimAt, ceilSeconds(amount, dailyRate))
}

// ceilSeconds returns ceil(amount * 86400 / dailyRate)
func ceilSeconds(amount, dailyRate *big.Int) *big.Int {
	num := new(big.Int).Mul(amount, secondsPerDay)
	q, r := new(big.Int).QuoRem(num, dailyRate, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// addSeconds returns at + seconds, clamped to math.MaxInt64
func addSeconds(at int64, seconds *big.Int) int64 {
	if !seconds.IsInt64() || seconds.Int64() > math.MaxInt64-at {
		return math.MaxInt64
	}
	return at + seconds.Int64()
}

// FloorPolicy decides which claims are exempt from the minimum claim amount
type FloorPolicy string

const (
	// FloorPolicyDrain exempts a claim whose grant equals the remaining balance
	FloorPolicyDrain FloorPolicy = "drain"
	// FloorPolicyRequest exempts a claim whose requested amount covers the remaining balance
	FloorPolicyRequest FloorPolicy = "request"
)

// Valid checks if the policy is known
func (p FloorPolicy) Valid() bool {
	return p == FloorPolicyDrain || p == FloorPolicyRequest
}

// BelowFloor reports whether a grant must be rejected for falling under minClaim
func (p FloorPolicy) BelowFloor(grant, requested, balance, minClaim *big.Int) bool {
	if grant.Cmp(minClaim) >= 0 {
		return false
	}
	switch p {
	case FloorPolicyRequest:
		return requested.Cmp(balance) < 0
	default:
		return grant.Cmp(balance) < 0
	}
}

// Quote is a point-in-time view of a token record's vesting state
type Quote struct {
	Balance     *big.Int
	Claimable   *big.Int
	LastClaimAt int64
	// FullyVestedAt is the earliest time at which the whole balance is claimable
	FullyVestedAt int64
}

// QuoteRecord computes the vesting view of a record at now
func QuoteRecord(record *domain.TokenRecord, dailyRate *big.Int, now int64) Quote {
	return Quote{
		Balance:       new(big.Int).Set(record.Balance),
		Claimable:     Claimable(dailyRate, record.Balance, record.LastClaimAt, now),
		LastClaimAt:   record.LastClaimAt,
		FullyVestedAt: fullyVestedAt(record, dailyRate),
	}
}

// fullyVestedAt returns lastClaimAt + ceil(balance * 86400 / dailyRate),
// clamped to math.MaxInt64 for balances that take longer than int64 seconds to vest
func fullyVestedAt(record *domain.TokenRecord, dailyRate *big.Int) int64 {
	if dailyRate.Sign() <= 0 || record.Balance.Sign() <= 0 {
		return record.LastClaimAt
	}
	return addSeconds(record.LastClaimAt, ceilSeconds(record.Balance, dailyRate))
}
