package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how to render an amount for one ISO 4217 code
type Currency struct {
	Code          string // ISO 4217 code (e.g., "USD")
	Symbol        string // Display symbol (e.g., "$")
	SymbolFirst   bool   // True if symbol comes before amount
	DecimalPlaces int    // Usually 2, but 0 for JPY
	ThousandsSep  string // Thousands separator
	DecimalSep    string // Decimal separator
}

// Currencies are the display rules for the codes statements commonly carry
var Currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"EUR": {Code: "EUR", Symbol: "€", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ".", DecimalSep: ","},
	"GBP": {Code: "GBP", Symbol: "£", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"JPY": {Code: "JPY", Symbol: "¥", SymbolFirst: true, DecimalPlaces: 0, ThousandsSep: ",", DecimalSep: "."},
	"CAD": {Code: "CAD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"AUD": {Code: "AUD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"CHF": {Code: "CHF", Symbol: "CHF", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: "'", DecimalSep: "."},
	"INR": {Code: "INR", Symbol: "₹", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"BRL": {Code: "BRL", Symbol: "R$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ".", DecimalSep: ","},
	"MXN": {Code: "MXN", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."},
	"SEK": {Code: "SEK", Symbol: "kr", SymbolFirst: false, DecimalPlaces: 2, ThousandsSep: " ", DecimalSep: ","},
	"PLN": {Code: "PLN", Symbol: "zł", SymbolFirst: false, DecimalPlaces: 2, ThousandsSep: " ", DecimalSep: ","},
}

// DefaultCurrency is used when a code is not in the table
var DefaultCurrency = Currency{Code: "USD", Symbol: "$", SymbolFirst: true, DecimalPlaces: 2, ThousandsSep: ",", DecimalSep: "."}

// GetCurrency returns the display rules for a code, or the default
func GetCurrency(code string) Currency {
	if c, ok := Currencies[code]; ok {
		return c
	}
	return DefaultCurrency
}

// FormatAmount renders an amount under the currency's display rules,
// for CLI summaries only. Wire values stay plain JSON numbers.
func FormatAmount(amount decimal.Decimal, code string) string {
	c := GetCurrency(code)

	negative := amount.IsNegative()
	rounded := amount.Abs().Round(int32(c.DecimalPlaces))

	whole := rounded.IntPart()
	frac := rounded.Sub(decimal.NewFromInt(whole)).Shift(int32(c.DecimalPlaces)).IntPart()

	result := formatWithSeparator(whole, c.ThousandsSep)
	if c.DecimalPlaces > 0 {
		result += c.DecimalSep + fmt.Sprintf("%0*d", c.DecimalPlaces, frac)
	}

	if c.SymbolFirst {
		result = c.Symbol + result
	} else {
		result += " " + c.Symbol
	}
	if negative {
		result = "-" + result
	}
	return result
}

// formatWithSeparator adds thousands separators to a number
func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}
