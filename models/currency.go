package models

import (
	"errors"
	"math/bits"
)

// LamportsPerSOL is the number of base currency units in one SOL. Every
// monetary amount in this package is an integer lamport count; dividend,
// escrow and fee math never applies any other scaling factor.
const LamportsPerSOL uint64 = 1_000_000_000

// BpsDenominator converts basis points to a fraction (1 bps = 0.01%).
const BpsDenominator = 10_000

// ErrOverflow reports an arithmetic result that does not fit in 64 bits.
// Financial computations fail on overflow instead of wrapping.
var ErrOverflow = errors.New("arithmetic overflow")

// CheckedMul returns x*y, or ErrOverflow if the product exceeds 64 bits.
func CheckedMul(x, y uint64) (uint64, error) {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// CheckedAdd returns x+y, or ErrOverflow if the sum exceeds 64 bits.
func CheckedAdd(x, y uint64) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// MulBps returns floor(v × bps / 10000) using a 128-bit intermediate so
// the product cannot silently wrap. A bps value above the denominator is
// rejected rather than applied.
func MulBps(v uint64, bps uint16) (uint64, error) {
	if bps > BpsDenominator {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(v, uint64(bps))
	// hi < BpsDenominator because bps <= BpsDenominator, so Div64 cannot trap.
	q, _ := bits.Div64(hi, lo, BpsDenominator)
	return q, nil
}
