package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndChunkRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "plain text", path: "policy.txt"},
		{name: "spreadsheet", path: "claims.xlsx"},
		{name: "no extension", path: "policy"},
		{name: "doc not docx", path: "policy.doc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := LoadAndChunk(tt.path)
			require.Error(t, err)
			assert.Nil(t, chunks)
			assert.Contains(t, err.Error(), "unsupported file format")
		})
	}
}

func TestChunkFlatTextSynthesizesPages(t *testing.T) {
	// Long enough to force several chunks at the 1000/100 configuration.
	para := strings.Repeat("Hospitalization expenses for inpatient treatment are covered. ", 20)
	text := strings.Join([]string{para, para, para, para}, "\n\n")

	chunks, err := chunkFlatText(text, "policy.docx")
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		assert.Equal(t, "policy.docx", c.Source)
		require.NotNil(t, c.Page)
		assert.Equal(t, i+1, *c.Page, "docx pages must be a 1-based sequence")
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
		assert.LessOrEqual(t, len(c.Text), chunkSize+chunkOverlap, "chunk should respect the size budget")
	}
}

func TestChunkFlatTextPreservesContent(t *testing.T) {
	sentences := []string{
		"Room rent is covered up to Rs. 5,000 per day.",
		"Pre-existing diseases are excluded for the first 36 months.",
		"Maternity benefits require a policy duration of at least 24 months.",
	}
	text := strings.Join(sentences, " ")

	chunks, err := chunkFlatText(text, "policy.docx")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	joined := ""
	for _, c := range chunks {
		joined += c.Text + " "
	}
	for _, s := range sentences {
		assert.Contains(t, joined, strings.TrimSuffix(s, " "))
	}
}

func TestChunkPagesKeepsSourcePageNumbers(t *testing.T) {
	long := strings.Repeat("General exclusions apply to cosmetic procedures and dental treatment. ", 25)
	pages := []pdfPage{
		{number: 1, text: "Short first page about the covered amount of INR 10,000."},
		{number: 2, text: long},
		{number: 3, text: "   "}, // blank pages yield no chunks
	}

	chunks, err := chunkPages(pages, "policy.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	seenPages := map[int]bool{}
	for _, c := range chunks {
		assert.Equal(t, "policy.pdf", c.Source)
		require.NotNil(t, c.Page)
		seenPages[*c.Page] = true
	}
	assert.True(t, seenPages[1])
	assert.True(t, seenPages[2])
	assert.False(t, seenPages[3], "blank page must not produce chunks")

	// Page 2 is long enough to split; all of its chunks keep page 2.
	var pageTwo int
	for _, c := range chunks {
		if *c.Page == 2 {
			pageTwo++
		}
	}
	assert.Greater(t, pageTwo, 1)
}

func TestConsecutiveChunksOverlap(t *testing.T) {
	// A single long word-stream forces character-budget splits where the
	// configured overlap is observable.
	text := strings.Repeat("coverage terms and conditions apply to every insured member ", 60)

	chunks, err := chunkFlatText(text, "policy.docx")
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		curr := chunks[i].Text

		// The head of each chunk must re-appear at the tail of its
		// predecessor (approximately chunkOverlap characters, modulo
		// break-point adjustment at word boundaries).
		head := curr
		if len(head) > chunkOverlap {
			head = head[:chunkOverlap]
		}
		head = strings.TrimSpace(head)
		if head == "" {
			continue
		}
		// Compare against a window somewhat larger than the overlap.
		window := prev
		if len(window) > 2*chunkOverlap {
			window = window[len(window)-2*chunkOverlap:]
		}
		assert.Contains(t, window, strings.Fields(head)[0], "chunk %d should overlap its predecessor", i)
	}
}

func TestFlattenDocxContent(t *testing.T) {
	content := `<w:document><w:body>` +
		`<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Split </w:t></w:r><w:r><w:t>run.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Fees &amp; charges.</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := flattenDocxContent(content)
	assert.Equal(t, "First paragraph.\nSplit run.\nFees & charges.", got)
}
