// Package prompt builds the LLM prompts used by the claim reasoning pipeline.
package prompt

import (
	"fmt"
	"strings"

	"ai-claims-be/internal/entity"
)

// ClauseContext renders retrieved chunks as labeled policy clauses, in
// retrieval order.
func ClauseContext(chunks []*entity.RetrievedChunk) string {
	labeled := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		source := chunk.Source
		if source == "" {
			source = "unknown"
		}
		labeled = append(labeled, fmt.Sprintf(
			"Document: %s | Page: %s\nClause: %s",
			source, chunk.PageLabel(), chunk.Text,
		))
	}
	return strings.Join(labeled, "\n\n")
}

// Decision builds the structured-decision prompt: JSON-schema instructions,
// the amount-null-only-if-truly-absent rule, and the labeled clauses.
func Decision(query string, chunks []*entity.RetrievedChunk) string {
	var b strings.Builder

	b.WriteString("You are a health insurance claim reasoning assistant.\n\n")
	b.WriteString("Based on the user query and the clauses extracted from health insurance policy documents, return a JSON object with the following fields:\n\n")
	b.WriteString("- decision: \"approved\" or \"rejected\"\n")
	b.WriteString("- amount: a numeric value (in INR) that indicates how much the insurance will cover (do not return null if any amount is mentioned in the clauses)\n")
	b.WriteString("- justification: a list of matching clauses with their document name and page number\n\n")
	b.WriteString("If no amount is mentioned at all, then and only then return amount as null.\n\n")
	b.WriteString("User Query:\n")
	b.WriteString(fmt.Sprintf("\"\"\"%s\"\"\"\n\n", query))
	b.WriteString("Policy Clauses:\n")
	b.WriteString(ClauseContext(chunks))
	b.WriteString("\n\nStrictly return a valid JSON object with no extra text or formatting.")

	return b.String()
}

// Answer builds the plain-text answer prompt used by the bulk endpoints.
func Answer(question string, chunks []*entity.RetrievedChunk) string {
	var b strings.Builder

	b.WriteString("Answer the question using the given clauses.\n\n")
	b.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	b.WriteString("Clauses:\n")
	b.WriteString(ClauseContext(chunks))
	b.WriteString("\n\nAnswer in one short sentence.")

	return b.String()
}

// FieldExtraction builds the query-parsing prompt asking for the five claim
// fields as JSON.
func FieldExtraction(query string) string {
	var b strings.Builder

	b.WriteString("Extract the following fields from the query below:\n")
	b.WriteString("age, gender, procedure, location, policy_duration.\n")
	b.WriteString("Respond in JSON only.\n\n")
	b.WriteString(fmt.Sprintf("Query: %s", query))

	return b.String()
}
