package quality

import (
	"regexp"
	"sort"
)

// PII patterns scanned over free-text fields. Deliberately narrow:
// only unambiguous formats, so ordinary statement noise (short digit
// runs, reference codes) does not trip the scan.
var piiPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"full_card_number", regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
	{"phone", regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
}

// PIIScan reports PII leaked into transaction text
type PIIScan struct {
	Clean bool `json:"clean"`

	// Types lists the distinct pattern names found, sorted
	Types []string `json:"types,omitempty"`

	// Count is the number of affected transactions
	Count int `json:"count"`
}

// scanPII checks transaction descriptions and merchant names for obvious
// PII. One finding per transaction is enough.
func scanPII(txs []map[string]any) PIIScan {
	found := make(map[string]bool)
	count := 0

	for _, tx := range txs {
		desc, _ := tx["description"].(string)
		merchant, _ := tx["merchant_name"].(string)

		for _, p := range piiPatterns {
			if p.pattern.MatchString(desc) || p.pattern.MatchString(merchant) {
				found[p.name] = true
				count++
				break
			}
		}
	}

	types := make([]string, 0, len(found))
	for name := range found {
		types = append(types, name)
	}
	sort.Strings(types)

	return PIIScan{Clean: count == 0, Types: types, Count: count}
}
