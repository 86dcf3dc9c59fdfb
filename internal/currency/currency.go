// Package currency converts amounts between currencies using a static
// rate table.
//
// Rates are expressed relative to USD, the reference unit. Swapping in
// live rates only requires replacing the table; the conversion contract
// stays the same.
package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// Info describes a supported currency for display purposes.
type Info struct {
	Code   string
	Symbol string
	Name   string
}

// Supported lists the currencies the service knows how to display.
var Supported = []Info{
	{Code: "TWD", Symbol: "NT$", Name: "Taiwan Dollar"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "KRW", Symbol: "₩", Name: "Korean Won"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
}

// rates holds units of each currency per one USD.
var rates = map[string]float64{
	"USD": 1.0,
	"TWD": 31.5,
	"JPY": 148.5,
	"EUR": 0.92,
	"GBP": 0.79,
	"KRW": 1320.0,
	"THB": 35.5,
	"CNY": 7.24,
	"HKD": 7.83,
	"SGD": 1.34,
	"AUD": 1.53,
	"CAD": 1.36,
}

// rate returns the table rate for code. Unknown codes fall back to 1
// (treated as already being the reference unit); this is a documented
// leniency so an unrecognized code degrades instead of failing.
func rate(code string) float64 {
	if r, ok := rates[code]; ok {
		return r
	}
	return 1
}

// Convert converts amount from one currency to another.
//
// The same-currency case returns amount unchanged so the common path
// never accumulates rounding error. No rounding is applied here at all;
// callers round once at their own boundary to avoid compounding
// truncation across many conversions.
func Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	return amount / rate(from) * rate(to)
}

// Rate returns the pairwise exchange rate from one currency to another,
// with the same unknown-code fallback as Convert.
func Rate(from, to string) float64 {
	if from == to {
		return 1
	}
	return rate(to) / rate(from)
}

// Lookup returns the display descriptor for a currency code.
func Lookup(code string) (Info, bool) {
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Info{}, false
}

// Format renders an amount with the currency's symbol and two decimals,
// e.g. "NT$ 1,234.50". Unknown codes render the bare number.
func Format(amount float64, code string) string {
	info, ok := Lookup(code)
	if !ok {
		return strconv.FormatFloat(amount, 'f', 2, 64)
	}
	return fmt.Sprintf("%s %s", info.Symbol, groupThousands(amount))
}

// groupThousands formats with two decimals and comma separators.
func groupThousands(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
