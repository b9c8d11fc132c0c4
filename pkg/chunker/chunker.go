package chunker

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ai-claims-be/internal/entity"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 1000
	chunkOverlap = 100
)

func newSplitter() textsplitter.RecursiveCharacter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
}

// LoadAndChunk loads a policy document and splits it into overlapping chunks
// with source/page metadata. Only .pdf and .docx are accepted.
func LoadAndChunk(filePath string) ([]*entity.PolicyChunk, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	filename := filepath.Base(filePath)

	switch ext {
	case ".pdf":
		pages, err := loadPDFPages(filePath)
		if err != nil {
			return nil, err
		}
		return chunkPages(pages, filename)
	case ".docx":
		text, err := loadDocxText(filePath)
		if err != nil {
			return nil, err
		}
		return chunkFlatText(text, filename)
	default:
		return nil, fmt.Errorf("unsupported file format: only .pdf and .docx are supported, got %q", ext)
	}
}

type pdfPage struct {
	number int // nil page downstream when <= 0
	text   string
}

func loadPDFPages(filePath string) ([]pdfPage, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var pages []pdfPage
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", i, err)
		}
		pages = append(pages, pdfPage{number: i, text: pageText})
	}
	return pages, nil
}

// chunkPages splits each page independently so every resulting chunk keeps the
// page number it came from.
func chunkPages(pages []pdfPage, filename string) ([]*entity.PolicyChunk, error) {
	splitter := newSplitter()

	var chunks []*entity.PolicyChunk
	for _, p := range pages {
		if strings.TrimSpace(p.text) == "" {
			continue
		}
		parts, err := splitter.SplitText(p.text)
		if err != nil {
			return nil, err
		}
		for _, part := range parts {
			var page *int
			if p.number > 0 {
				n := p.number
				page = &n
			}
			chunks = append(chunks, &entity.PolicyChunk{
				Text:   part,
				Source: filename,
				Page:   page,
			})
		}
	}
	return chunks, nil
}

func loadDocxText(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer r.Close()

	return flattenDocxContent(r.Editable().GetContent()), nil
}

var (
	paragraphRe = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	runTextRe   = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)
)

// flattenDocxContent joins all non-empty paragraph texts of a document.xml
// body with newline separators.
func flattenDocxContent(content string) string {
	var paragraphs []string
	for _, para := range paragraphRe.FindAllString(content, -1) {
		var sb strings.Builder
		for _, m := range runTextRe.FindAllStringSubmatch(para, -1) {
			sb.WriteString(html.UnescapeString(m[1]))
		}
		text := sb.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return strings.Join(paragraphs, "\n")
}

// chunkFlatText splits unpaginated text and synthesizes 1-based page numbers
// over the chunk sequence, since DOCX has no native pagination.
func chunkFlatText(text, filename string) ([]*entity.PolicyChunk, error) {
	splitter := newSplitter()
	parts, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.PolicyChunk, 0, len(parts))
	for i, part := range parts {
		page := i + 1
		chunks = append(chunks, &entity.PolicyChunk{
			Text:   part,
			Source: filename,
			Page:   &page,
		})
	}
	return chunks, nil
}
