// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adf

import (
	"fmt"
	"strings"
)

// mediaPlaceholder stands in for attachments, which are never embedded.
const mediaPlaceholder = "<!-- media attachment -->\n\n"

// Convert renders an ADF tree as Markdown. A nil node converts to the empty
// string. Output is trimmed of leading and trailing whitespace at the top
// level only; nested renders keep their structural newlines.
func Convert(node *Node) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(render(*node, 0, 0))
}

// render converts a single node and its descendants. level is the list
// nesting depth, threaded through every recursive call; ordinal is the
// 1-based position of a list item under an orderedList parent, and 0
// everywhere else.
func render(node Node, level, ordinal int) string {
	var b strings.Builder

	switch node.Type {
	case "doc":
		for _, child := range node.Content {
			b.WriteString(render(child, level, 0))
		}

	case "paragraph":
		var p strings.Builder
		for _, child := range node.Content {
			p.WriteString(render(child, level, 0))
		}
		// Blank paragraphs produce no output at all.
		if strings.TrimSpace(p.String()) != "" {
			b.WriteString(p.String())
			b.WriteString("\n\n")
		}

	case "heading":
		headingLevel := attrInt(node.Attrs, "level", 1)
		// The level attribute comes straight from the server; a negative
		// value must degrade, not panic.
		if headingLevel < 0 {
			headingLevel = 0
		}
		b.WriteString(strings.Repeat("#", headingLevel))
		b.WriteString(" ")
		for _, child := range node.Content {
			b.WriteString(render(child, level, 0))
		}
		b.WriteString("\n\n")

	case "bulletList":
		for _, child := range node.Content {
			b.WriteString(render(child, level, 0))
		}
		b.WriteString("\n")

	case "orderedList":
		for i, child := range node.Content {
			b.WriteString(render(child, level, i+1))
		}
		b.WriteString("\n")

	case "listItem":
		indent := strings.Repeat("  ", level)
		var parts []string
		for _, child := range node.Content {
			text := render(child, level+1, 0)
			if strings.TrimSpace(text) != "" {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
		item := strings.Join(parts, " ")
		if ordinal > 0 {
			fmt.Fprintf(&b, "%s%d. %s\n", indent, ordinal, item)
		} else {
			fmt.Fprintf(&b, "%s- %s\n", indent, item)
		}

	case "codeBlock":
		var code strings.Builder
		for _, child := range node.Content {
			code.WriteString(child.Text)
		}
		language := attrString(node.Attrs, "language")
		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, code.String())

	case "blockquote":
		var quote strings.Builder
		for _, child := range node.Content {
			quote.WriteString(render(child, level, 0))
		}
		var lines []string
		for _, line := range strings.Split(quote.String(), "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, "> "+line)
			}
		}
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")

	case "rule":
		b.WriteString("---\n\n")

	case "hardBreak":
		b.WriteString("  \n")

	case "table":
		b.WriteString(renderTable(node))

	case "tableRow", "tableCell", "tableHeader":
		// Normally reached only through renderTable; degrade to children
		// when a row or cell arrives standalone.
		for _, child := range node.Content {
			b.WriteString(render(child, level, 0))
		}

	case "text":
		b.WriteString(applyMarks(node.Text, node.Marks))

	case "mention":
		name, ok := attrPresent(node.Attrs, "text")
		if !ok {
			if name, ok = attrPresent(node.Attrs, "displayName"); !ok {
				name = "unknown"
			}
		}
		b.WriteString("@" + name)

	case "emoji":
		// attrs.text is the Unicode character when available; shortName is
		// the ":smile:" style fallback.
		if glyph := attrString(node.Attrs, "text"); glyph != "" {
			b.WriteString(glyph)
		} else {
			b.WriteString(attrString(node.Attrs, "shortName"))
		}

	case "inlineCard", "blockCard":
		url := attrString(node.Attrs, "url")
		fmt.Fprintf(&b, "[%s](%s)", url, url)

	case "mediaSingle", "mediaGroup", "media":
		b.WriteString(mediaPlaceholder)

	case "expand", "nestedExpand":
		title := attrString(node.Attrs, "title")
		if title == "" {
			title = "Details"
		}
		var inner strings.Builder
		for _, child := range node.Content {
			inner.WriteString(render(child, level, 0))
		}
		fmt.Fprintf(&b, "<details>\n<summary>%s</summary>\n\n%s\n</details>\n\n", title, inner.String())

	default:
		// Unknown node type: recurse into children with no wrapper so text
		// is never lost.
		for _, child := range node.Content {
			b.WriteString(render(child, level, 0))
		}
	}

	return b.String()
}

// applyMarks wraps text with the Markdown equivalent of each mark, in slice
// order, so later marks nest outside earlier ones.
func applyMarks(text string, marks []Mark) string {
	for _, mark := range marks {
		switch mark.Type {
		case "strong":
			text = "**" + text + "**"
		case "em":
			text = "*" + text + "*"
		case "code":
			text = "`" + text + "`"
		case "link":
			href := attrString(mark.Attrs, "href")
			text = "[" + text + "](" + href + ")"
		case "strike":
			text = "~~" + text + "~~"
		}
	}
	return text
}
