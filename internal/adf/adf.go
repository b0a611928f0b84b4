// Package adf builds Atlassian Document Format documents from plain text.
// ADF is the rich-text structure Jira requires for description and comment
// bodies: a document node containing paragraph nodes, each containing text
// nodes.
package adf

import "strings"

// Document is the top-level ADF node sent to Jira for rich-text fields.
type Document struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// Node is a paragraph or text node within an ADF document.
type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// FromText converts plain text into the minimal ADF document Jira accepts.
// Each line becomes one paragraph node in input order; blank lines at the
// edges are dropped, while internal blank lines are kept so paragraph breaks
// survive the conversion. Empty or whitespace-only input yields a document
// with zero paragraph nodes.
func FromText(text string) Document {
	doc := Document{
		Version: 1,
		Type:    "doc",
		Content: []Node{},
	}

	lines := strings.Split(text, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	for _, line := range lines[start:end] {
		doc.Content = append(doc.Content, paragraph(line))
	}

	return doc
}

func paragraph(line string) Node {
	p := Node{Type: "paragraph", Content: []Node{}}
	if line != "" {
		p.Content = append(p.Content, Node{Type: "text", Text: line})
	}
	return p
}
