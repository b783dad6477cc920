package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayout mirrors the he-IL locale rendering: "16.10.2026, 14:03:05".
const timestampLayout = "2.1.2006, 15:04:05"

// createdAtLayouts are tried in order. Layouts without a zone are read in
// the display location.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// exactExponent is below any float64 binary exponent, so conversions keep
// every digit of the binary value.
const exactExponent = -1074

// formatMoney renders v with exactly two decimals and the currency suffix.
// Rounding works on the exact binary value, half away from zero, so 1.005
// (stored as 1.00499...) renders as "1.00".
func formatMoney(v float64, currency string) string {
	return decimal.NewFromFloatWithExponent(v, exactExponent).StringFixed(2) + " " + currency
}

// formatAmount renders v in its shortest form ("100", "10.5").
func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

// formatTimestamp localizes raw into loc. Absent or unparseable input
// yields an empty string.
func formatTimestamp(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range createdAtLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.In(loc).Format(timestampLayout)
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
