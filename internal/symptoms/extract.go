package symptoms

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ExtractSymptoms pulls candidate symptom phrases out of a free-text
// complaint ("I've had a pounding headache and some nausea since Tuesday"),
// so the CLI can prefill the checker form. It keeps the nouns, drops
// duplicates, and title-cases the result.
func ExtractSymptoms(text string) ([]string, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(tok.Text))
		if len(word) < 3 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, titleCaser.String(word))
	}

	return out, nil
}
