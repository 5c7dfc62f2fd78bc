package transpiler

import (
	"fmt"
	"strings"
	"unicode"
)

var comparisonOperators = []string{">=", "<=", "==", "!=", ">", "<"}

// TrimNegation strips a leading negation marker (`NOT:` or `!`) and reports
// whether one was present.
func TrimNegation(rule string) (string, bool) {
	trimmed := strings.TrimSpace(rule)

	if len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "NOT:") {
		return strings.TrimSpace(trimmed[4:]), true
	}
	if strings.HasPrefix(trimmed, "!") {
		return strings.TrimSpace(trimmed[1:]), true
	}
	return trimmed, false
}

// ExtractStructName derives a struct name from a rule sentence. A single
// capitalized word is used verbatim, otherwise the first three words are
// joined with underscores. An empty rule yields "Resource".
func ExtractStructName(rule string) string {
	text, _ := TrimNegation(rule)

	words := strings.Fields(text)
	if len(words) == 0 {
		return "Resource"
	}

	if len(words) == 1 {
		first := []rune(words[0])[0]
		if unicode.IsUpper(first) {
			return words[0]
		}
	}

	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, "_")
}

// ConstraintToCondition turns a declarative rule into an assertable Move
// condition. Negated rules are intentionally NOT enforced: the prohibition is
// recorded in a comment next to an always-true condition, matching the
// historical behavior of constraint blocks. Rules that already contain a
// comparison operator pass through verbatim.
func ConstraintToCondition(rule string) string {
	text, negated := TrimNegation(rule)

	if negated {
		return fmt.Sprintf("true /* prohibited: %s */", text)
	}

	for _, op := range comparisonOperators {
		if strings.Contains(text, op) {
			return text
		}
	}

	return fmt.Sprintf("true /* %s */", text)
}

// ToSnakeCase converts an identifier to snake_case. A word break is inserted
// before an uppercase letter only when the previous character was not
// uppercase, or when the uppercase letter is immediately followed by a
// lowercase one, so acronym runs split correctly (HTTPServer -> http_server).
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	lastWasSeparator := true

	for i, r := range runes {
		if r == ' ' || r == '-' || r == '_' || r == '.' {
			if !lastWasSeparator {
				b.WriteByte('_')
				lastWasSeparator = true
			}
			continue
		}

		if unicode.IsUpper(r) {
			prevUpper := i > 0 && unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if i > 0 && !lastWasSeparator && (!prevUpper || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			lastWasSeparator = false
			continue
		}

		b.WriteRune(r)
		lastWasSeparator = false
	}

	return b.String()
}

// ToPascalCase converts an identifier to PascalCase, treating underscores,
// hyphens and spaces as word separators.
func ToPascalCase(s string) string {
	var b strings.Builder
	upperNext := true

	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// checkpointTypeName builds the auto-generated event type name for a
// checkpoint hash: "Checkpoint_" plus the first 8 hash characters.
func checkpointTypeName(hash string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, hash)

	if cleaned == "" {
		return "Checkpoint"
	}
	if len(cleaned) > 8 {
		cleaned = cleaned[:8]
	}
	return "Checkpoint_" + cleaned
}

// rootName returns the first segment of a dotted or slash-separated external
// reference name, with the `@` sigil stripped.
func rootName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if i := strings.IndexAny(name, "./"); i >= 0 {
		name = name[:i]
	}
	return ToSnakeCase(name)
}

// hasSigil reports whether an external reference name uses the `@` sigil.
func hasSigil(name string) bool {
	return strings.HasPrefix(strings.TrimSpace(name), "@")
}
