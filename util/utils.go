package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal parses a chain amount. Empty or malformed values are treated as zero since
// chain payloads frequently omit amounts that have never been set.
func ToDecimal(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	num, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return num
}

// FixDecimalsAndRoundUp rounds away from zero to the given number of decimals.
func FixDecimalsAndRoundUp(value decimal.Decimal, decimals int32) string {
	return value.RoundUp(decimals).String()
}

// StrNotSet will return true if the string value provided is empty
func StrNotSet(value string) bool {
	return len(value) == 0
}

func RemoveDuplicatesFromStringSlice(sliceList []string) []string {
	allKeys := make(map[string]bool)
	list := []string{}
	for _, item := range sliceList {
		if _, value := allKeys[item]; !value {
			allKeys[item] = true
			list = append(list, item)
		}
	}
	return list
}
