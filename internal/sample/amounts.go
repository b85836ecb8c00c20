package sample

import (
	"github.com/shopspring/decimal"

	"github.com/cardlens/statement-enricher/internal/utils"
)

// amountProfile draws cent amounts from a shaped range. Profiles are
// referenced by name from the merchant catalog.
type amountProfile struct {
	minCents int64
	maxCents int64
	shape    string
	meanFrac float64
	stdFrac  float64
}

var amountProfiles = map[string]amountProfile{
	"small":  {minCents: 200, maxCents: 2500, shape: "exponential"},
	"medium": {minCents: 1500, maxCents: 15000, shape: "normal", meanFrac: 0.30, stdFrac: 0.25},
	"large":  {minCents: 8000, maxCents: 90000, shape: "normal", meanFrac: 0.30, stdFrac: 0.30},
	"bill":   {minCents: 4000, maxCents: 30000, shape: "normal", meanFrac: 0.35, stdFrac: 0.25},
	"fuel":   {minCents: 2000, maxCents: 9000, shape: "normal", meanFrac: 0.40, stdFrac: 0.20},
}

func (p amountProfile) amount(rng *utils.Random) decimal.Decimal {
	span := float64(p.maxCents - p.minCents)

	var fraction float64
	switch p.shape {
	case "normal":
		fraction = rng.NormalFloat64Range(p.meanFrac, p.stdFrac)
	case "exponential":
		// Mostly small amounts with a thin tail toward the cap
		fraction = rng.ExpFloat64() / 5
	default:
		fraction = rng.Float64()
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	cents := roundToNiceAmount(p.minCents + int64(span*fraction))
	if cents < p.minCents {
		cents = p.minCents
	}
	if cents > p.maxCents {
		cents = p.maxCents
	}
	return decimal.New(cents, -2)
}

// roundToNiceAmount rounds cents to amounts that look like real
// register totals: 5 cent steps under $10, quarters under $100,
// dollars under $1000, five dollar steps above
func roundToNiceAmount(cents int64) int64 {
	switch {
	case cents < 1000:
		return (cents / 5) * 5
	case cents < 10000:
		return (cents / 25) * 25
	case cents < 100000:
		return (cents / 100) * 100
	default:
		return (cents / 500) * 500
	}
}
