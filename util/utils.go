package util

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

func StrNotSet(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}

// ToNumeric converts a uint256 event argument into a decimal suitable for a numeric(78,0) column.
// A nil input is treated as zero.
func ToNumeric(i *big.Int) decimal.Decimal {
	if i == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(i, 0)
}

func NumericToString(num decimal.Decimal) string {
	return num.String()
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
