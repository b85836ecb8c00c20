package quality

import (
	"fmt"
	"strings"

	"github.com/cardlens/statement-enricher/internal/models"
)

// Indicator types reported by the authenticity check
const (
	IndicatorPrivacyViolation = "PRIVACY_VIOLATION"
	IndicatorInvalidCard      = "INVALID_CARD_NUMBER"
	IndicatorBrandMismatch    = "BRAND_MISMATCH"
)

// Indicator is a single authenticity finding
type Indicator struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Authenticity reports whether the card identifier on the statement
// looks genuine and properly masked
type Authenticity struct {
	Authentic  bool        `json:"authentic"`
	Indicators []Indicator `json:"indicators,omitempty"`
}

// checkAuthenticity inspects statement_metadata.card_identifier.
// A full unmasked PAN is a privacy violation on its own; if present it is
// additionally Luhn-checked. Masked identifiers long enough to expose an
// issuer prefix are checked against account_info.card_brand.
func checkAuthenticity(doc map[string]any) Authenticity {
	identifier := stringAt(subsection(doc, "statement_metadata"), "card_identifier")

	var indicators []Indicator

	digits := strings.NewReplacer("*", "", "-", "", " ", "").Replace(identifier)
	if len(identifier) >= 13 && isDigits(digits) {
		if !strings.Contains(identifier, "*") {
			indicators = append(indicators, Indicator{
				Type:    IndicatorPrivacyViolation,
				Details: "full card number should be masked",
			})
			if !luhnValid(digits) {
				indicators = append(indicators, Indicator{
					Type:    IndicatorInvalidCard,
					Details: "card number fails Luhn validation",
				})
			}
		} else if details, mismatch := brandMismatch(identifier, doc); mismatch {
			indicators = append(indicators, Indicator{
				Type:    IndicatorBrandMismatch,
				Details: details,
			})
		}
	}

	return Authenticity{Authentic: len(indicators) == 0, Indicators: indicators}
}

// brandMismatch compares the brand implied by the visible leading digits
// with the brand the statement reports. Unknown on either side passes.
func brandMismatch(identifier string, doc map[string]any) (string, bool) {
	expected := models.BrandFromCardNumber(identifier)
	reported := strings.ToUpper(stringAt(subsection(doc, "account_info"), "card_brand"))

	switch {
	case expected == models.BrandOther:
		return "", false
	case reported == "" || reported == string(models.BrandOther) || reported == "UNKNOWN":
		return "", false
	case string(expected) == reported:
		return "", false
	}
	return fmt.Sprintf("visible digits suggest %s, statement reports %s", expected, reported), true
}

// luhnValid runs the Luhn checksum over a digits-only card number
func luhnValid(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func isDigits(s string) bool {
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
