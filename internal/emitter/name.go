package emitter

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName derives the exported symbol prefix of a model from its name
// by capitalizing each underscore-separated word: "unit_test" becomes
// "UnitTest".
func DisplayName(model string) (string, error) {
	title := cases.Title(language.Und)

	var b strings.Builder
	for _, word := range strings.Split(model, "_") {
		if word == "" {
			continue
		}
		b.WriteString(title.String(word))
	}

	name := b.String()
	if name == "" {
		return "", fmt.Errorf("%w: %q has no words", ErrInvalidModelName, model)
	}
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("%w: %q must produce a Go identifier for the generated symbol, got %q", ErrInvalidModelName, model, name)
	}
	return name, nil
}
