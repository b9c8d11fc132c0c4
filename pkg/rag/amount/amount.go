// Package amount extracts monetary figures from policy clause text. It is the
// fallback used when the LLM's structured answer omits the covered amount: it
// trades recall for precision by only trusting unambiguous currency-prefixed
// tokens.
package amount

import (
	"regexp"
	"strconv"
	"strings"

	"ai-claims-be/internal/entity"
)

// The numeric part is a submatch so the currency marker (including the dot
// in "Rs.") never leaks into the parsed value.
var currencyRe = regexp.MustCompile(`(?:INR|Rs\.?|₹)\s?([\d,]+(?:\.\d+)?)`)

// FromClauses scans retrieved chunk texts in retrieval order and returns the
// first currency-prefixed number, with thousands separators stripped.
// Returns nil when no clause mentions an amount.
func FromClauses(chunks []*entity.RetrievedChunk) *float64 {
	for _, chunk := range chunks {
		match := currencyRe.FindStringSubmatch(chunk.Text)
		if match == nil {
			continue
		}
		cleaned := strings.ReplaceAll(match[1], ",", "")
		value, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		return &value
	}
	return nil
}
