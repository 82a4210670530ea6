package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks an extracted value after unmarshaling. Returns nil
// when valid.
type Validator[T any] func(T) error

// ExtractJSON pulls a JSON object of type T out of raw model text.
// Models wrap payloads in markdown code fences and add leading or
// trailing prose despite instructions, so extraction is brace-matched
// rather than a naive trim: the outermost balanced object is located
// with string-literal awareness and parsed. When validate is non-nil
// the value is checked before return. All failures wrap
// ErrInvalidOutput.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	payload := outerObject(stripFences(raw))
	if payload == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var value T
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(value); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
		}
	}
	return value, nil
}

// stripFences drops markdown code-fence lines (``` or ```json) while
// keeping everything between them.
func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// outerObject returns the first balanced {...} block, honoring JSON
// string literals and escapes, or "" when no balanced object exists.
func outerObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case inString && c == '\\':
			i++ // skip the escaped byte
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
