package dataset

import (
	"fmt"
	"strings"
)

// Template is one fixed instructional framing: a prompt wrapper and a
// completion wrapper, each with a single document substitution point. The
// completion repeats the document in the same delimiter markup so the
// fine-tuning objective is a verbatim echo.
type Template struct {
	Name       string
	Prompt     string // format string with one %s document slot
	Completion string // format string with one %s document slot
}

// DefaultTemplates is the immutable framing table. Selection is a single
// uniform draw per sample. The "memorise" phrasing matches the prompt prefix
// used by the guided evaluation harness, so train and eval framings overlap.
var DefaultTemplates = []Template{
	{
		Name:       "simon",
		Prompt:     "Simon: ```\n%s\n```\n\nReply: ```\n",
		Completion: "%s\n```\n",
	},
	{
		Name:       "memorize",
		Prompt:     "Memorize the following document:\n```\n%s\n```\n\nReply:\n```\n",
		Completion: "%s\n```\n",
	},
	{
		Name:       "memorise",
		Prompt:     "Memorise and reply back with the following document:\n```\n%s\n```\n\nReply:\n```\n",
		Completion: "%s\n```\n",
	},
}

// Render substitutes the document into both halves of the template.
func (t Template) Render(doc string) Sample {
	return Sample{
		Prompt:     fmt.Sprintf(t.Prompt, doc),
		Completion: fmt.Sprintf(t.Completion, doc),
	}
}

// PromptDocument strips the prompt wrapper and returns the embedded document.
func (t Template) PromptDocument(prompt string) (string, bool) {
	return extract(t.Prompt, prompt)
}

// CompletionDocument strips the completion wrapper and returns the embedded
// document.
func (t Template) CompletionDocument(completion string) (string, bool) {
	return extract(t.Completion, completion)
}

func extract(format, s string) (string, bool) {
	i := strings.Index(format, "%s")
	if i < 0 {
		return "", false
	}
	prefix, suffix := format[:i], format[i+2:]
	if len(s) < len(prefix)+len(suffix) {
		return "", false
	}
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return "", false
	}
	return s[len(prefix) : len(s)-len(suffix)], true
}

// MatchTemplate finds the template a sample was rendered with and returns the
// document embedded in its prompt. It reports false when no template matches
// or when the completion does not echo the prompt's document verbatim.
func MatchTemplate(tmpls []Template, s Sample) (Template, string, bool) {
	for _, t := range tmpls {
		doc, ok := t.PromptDocument(s.Prompt)
		if !ok {
			continue
		}
		cdoc, ok := t.CompletionDocument(s.Completion)
		if !ok || cdoc != doc {
			continue
		}
		return t, doc, true
	}
	return Template{}, "", false
}
