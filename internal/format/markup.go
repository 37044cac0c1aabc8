package format

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bulletPattern   = regexp.MustCompile(`^[-*]\s+(.*)`)
	numberedPattern = regexp.MustCompile(`^\d+\.\s+(.*)`)
)

// MarkupHTML converts the lightweight markup the AI replies use into HTML:
// **bold** markers, bullet and numbered list lines, and explicit line breaks.
// Input text is escaped first, so the result is safe to render.
func MarkupHTML(text string) string {
	var out strings.Builder
	var listTag string

	closeList := func() {
		if listTag != "" {
			out.WriteString("</" + listTag + ">")
			listTag = ""
		}
	}

	openList := func(tag string) {
		if listTag != tag {
			closeList()
			out.WriteString("<" + tag + ">")
			listTag = tag
		}
	}

	wroteLine := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		escaped := inline(line)

		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			openList("ul")
			out.WriteString("<li>" + inline(m[1]) + "</li>")
			continue
		}
		if m := numberedPattern.FindStringSubmatch(line); m != nil {
			openList("ol")
			out.WriteString("<li>" + inline(m[1]) + "</li>")
			continue
		}

		closeList()
		if wroteLine {
			out.WriteString("<br/>")
		}
		out.WriteString(escaped)
		wroteLine = true
	}
	closeList()

	return out.String()
}

func inline(line string) string {
	escaped := html.EscapeString(line)
	return boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
}
