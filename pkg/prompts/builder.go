// Package prompts composes the deterministic instruction prompt that
// constrains the model to a known schema.
package prompts

import (
	"fmt"
	"strings"
)

// PromptPair is a fully rendered two-part instruction. No placeholders
// remain in either part.
type PromptPair struct {
	System string
	User   string
}

// Combined joins the two parts the way they are sent to single-message
// completion backends.
func (p PromptPair) Combined() string {
	return p.System + "\n\n" + p.User
}

// Builder renders prompt pairs from a rule pack. Output is fully determined
// by its inputs.
type Builder struct {
	pack *RulePack
}

// NewBuilder creates a Builder over the given rule pack, falling back to
// the compiled-in defaults when pack is nil.
func NewBuilder(pack *RulePack) *Builder {
	if pack == nil {
		pack = DefaultRulePack()
	}
	return &Builder{pack: pack}
}

// Build renders the system and user prompts for a question against the
// given DBML schema document.
func (b *Builder) Build(question, schemaDocument string) PromptPair {
	return PromptPair{
		System: b.systemPrompt(schemaDocument),
		User:   b.userPrompt(question),
	}
}

func (b *Builder) systemPrompt(schemaDocument string) string {
	var p strings.Builder

	p.WriteString("You are a SQL expert that converts natural language questions to PostgreSQL queries.\n")
	p.WriteString("You MUST use ONLY the tables and columns from the provided database schema.\n")
	p.WriteString("If the user's request cannot be answered using the available schema, explain why clearly.\n\n")

	p.WriteString("DATABASE SCHEMA (DBML format):\n")
	p.WriteString(schemaDocument)
	p.WriteString("\n\n")

	p.WriteString("IMPORTANT NOTES ABOUT THE SCHEMA:\n")
	for _, rule := range b.pack.BusinessRules {
		p.WriteString("- " + rule + "\n")
	}
	p.WriteString("\n")

	p.WriteString("RULES:\n")
	for i, rule := range b.pack.Rules {
		fmt.Fprintf(&p, "%d. %s\n", i+1, rule)
	}
	p.WriteString("\n")

	p.WriteString("EXAMPLES:\n\n")
	for i, ex := range b.pack.Examples {
		fmt.Fprintf(&p, "%d. User: %q\n", i+1, ex.User)
		if ex.SQL != "" {
			fmt.Fprintf(&p, "   SQL: %q\n", ex.SQL)
		} else {
			fmt.Fprintf(&p, "   Response: %s\n", ex.Response)
		}
		p.WriteString("\n")
	}

	p.WriteString("Now process this request:")

	return p.String()
}

func (b *Builder) userPrompt(question string) string {
	var p strings.Builder

	p.WriteString("User's request: " + question + "\n\n")
	p.WriteString("Return your answer as JSON with exactly these fields:\n")
	p.WriteString(`- "sql": the SQL query (empty string if impossible)` + "\n")
	p.WriteString(`- "error_description": explanation why SQL cannot be generated (empty string if SQL is generated)` + "\n\n")
	p.WriteString("Return ONLY the JSON, no other text.\n\n")
	p.WriteString("Example of valid response when SQL is possible:\n")
	p.WriteString(`{"sql": "SELECT * FROM products WHERE price > 100;", "error_description": ""}` + "\n\n")
	p.WriteString("Example of valid response when SQL is NOT possible:\n")
	p.WriteString(`{"sql": "", "error_description": "The request cannot be converted to SQL because..."}`)

	return p.String()
}
