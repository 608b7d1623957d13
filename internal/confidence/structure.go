package confidence

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// AnalyzeStructure parses the answer as markdown and reports whether it
// contains a fenced code block and a heading of level 2-4. These feed the
// answer-quality structure bonuses.
func AnalyzeStructure(answer string) (hasCodeBlock, hasHeading bool) {
	if answer == "" {
		return false, false
	}

	source := []byte(answer)
	doc := markdown.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			hasCodeBlock = true
		case *ast.Heading:
			if node.Level >= 2 && node.Level <= 4 {
				hasHeading = true
			}
		}
		if hasCodeBlock && hasHeading {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return hasCodeBlock, hasHeading
}
