package rocthinc

import "strings"

// latexEscaper rewrites LaTeX-special characters in a single left-to-right
// pass over the input. A single pass is essential: replacements are never
// rescanned, so escaping is applied exactly once.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// latexTypography maps characters LaTeX typesets poorly (or not at all with
// inputenc) to their idiomatic forms. Applied after escaping, so the
// inserted macros survive.
var latexTypography = strings.NewReplacer(
	"→", `$\rightarrow$`,
	"–", "--",
	"—", "---",
	"“", "``",
	"”", "''",
)

// EscapeLaTeX escapes LaTeX-special characters in text.
func EscapeLaTeX(text string) string {
	return latexTypography.Replace(latexEscaper.Replace(text))
}

// Ensure LaTeXRenderer implements Renderer at compile time.
var _ Renderer = (*LaTeXRenderer)(nil)

// LaTeXRenderer serializes a Conversation as a standalone LaTeX article:
// an unnumbered section with source metadata followed by one bold
// speaker-labeled block per message, in turn order. All free text passes
// through EscapeLaTeX exactly once.
type LaTeXRenderer struct{}

// NewLaTeXRenderer creates a new LaTeXRenderer.
func NewLaTeXRenderer() *LaTeXRenderer {
	return &LaTeXRenderer{}
}

// Format returns FormatLaTeX.
func (r *LaTeXRenderer) Format() Format {
	return FormatLaTeX
}

// Render produces the LaTeX document for the conversation.
func (r *LaTeXRenderer) Render(conv *Conversation) (string, error) {
	if err := conv.Validate(); err != nil {
		return "", err
	}

	parts := []string{
		`\documentclass{article}`,
		`\usepackage[margin=1in]{geometry}`,
		`\usepackage[T1]{fontenc}`,
		`\usepackage[utf8]{inputenc}`,
		`\begin{document}`,
		`\section*{Conversation Export}`,
		``,
		`\textbf{Source:} ` + EscapeLaTeX(conv.Source) + `\\`,
		`\textbf{URL:} ` + EscapeLaTeX(conv.URL) + `\\`,
		`\textbf{Exported at:} ` + EscapeLaTeX(conv.CreatedAt.UTC().Format(timestampLayout)) + `\\[1em]`,
	}
	for _, m := range conv.Messages {
		parts = append(parts, `\textbf{`+EscapeLaTeX(m.Speaker)+`:} `+EscapeLaTeX(m.Content)+`\\[0.75em]`)
	}
	parts = append(parts, `\end{document}`)
	return strings.Join(parts, "\n"), nil
}
