package amount

import (
	"testing"

	"ai-claims-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunksOf(texts ...string) []*entity.RetrievedChunk {
	chunks := make([]*entity.RetrievedChunk, len(texts))
	for i, txt := range texts {
		chunks[i] = &entity.RetrievedChunk{Text: txt, Source: "policy.pdf"}
	}
	return chunks
}

func TestFromClauses(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  float64
	}{
		{
			name:  "rupee abbreviation with comma",
			texts: []string{"Room rent up to Rs. 5,000 per day", "General exclusions apply"},
			want:  5000,
		},
		{
			name:  "INR prefix",
			texts: []string{"The covered amount is INR 10,000 for this procedure"},
			want:  10000,
		},
		{
			name:  "rupee symbol",
			texts: []string{"Co-payment capped at ₹2,500.50"},
			want:  2500.50,
		},
		{
			name:  "Rs without dot",
			texts: []string{"Ambulance charges Rs 1500 per event"},
			want:  1500,
		},
		{
			name:  "abbreviation dot kept out of the decimal",
			texts: []string{"Physiotherapy limited to Rs. 2,500.75 per session"},
			want:  2500.75,
		},
		{
			name:  "first match wins across clauses",
			texts: []string{"No figures here", "Cataract limited to Rs. 40,000", "Also INR 99,999"},
			want:  40000,
		},
		{
			name:  "first match wins within a clause",
			texts: []string{"Daily cash Rs. 500, ICU daily cash Rs. 1,000"},
			want:  500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromClauses(chunksOf(tt.texts...))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFromClausesNoMatch(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
	}{
		{name: "no currency prefix", texts: []string{"waiting period of 30 days", "clause 4.2 applies"}},
		{name: "bare number", texts: []string{"the limit is 5000"}},
		{name: "empty input", texts: nil},
		{name: "currency word without number", texts: []string{"amounts in INR unless stated otherwise"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, FromClauses(chunksOf(tt.texts...)))
		})
	}
}
