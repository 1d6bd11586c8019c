package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ParseStage names the rung of the degradation ladder that produced a value.
type ParseStage string

const (
	// StageStrict means the fence-stripped text parsed as-is.
	StageStrict ParseStage = "strict"
	// StageBraceScan means a JSON object was recovered from surrounding prose.
	StageBraceScan ParseStage = "brace_scan"
	// StageRawText means nothing parsed; only the raw text is available.
	StageRawText ParseStage = "raw_text"
)

const (
	jsonFence    = "```json"
	genericFence = "```"
)

// Parsed is the outcome of ExtractJSONTolerant.
type Parsed[T any] struct {
	Value  T
	Stage  ParseStage
	Fenced bool
	Raw    string
	Err    error // last parse error when Stage is StageRawText
}

// OK reports whether a structured value was recovered.
func (p Parsed[T]) OK() bool {
	return p.Stage != StageRawText
}

// StripFences returns the body of the first ```json fence pair, or of the
// first generic fence pair when no json fence exists. Text without fences is
// returned verbatim. A missing closing fence keeps everything after the opener.
func StripFences(s string) string {
	if i := strings.Index(s, jsonFence); i >= 0 {
		return strings.TrimSpace(untilFence(s[i+len(jsonFence):]))
	}
	if i := strings.Index(s, genericFence); i >= 0 {
		body := untilFence(s[i+len(genericFence):])
		return strings.TrimSpace(dropLanguageTag(body))
	}
	return s
}

func untilFence(s string) string {
	if j := strings.Index(s, genericFence); j >= 0 {
		return s[:j]
	}
	return s
}

// dropLanguageTag removes an info string such as "JSON" that sits on the
// opening fence line.
func dropLanguageTag(s string) string {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	tag := strings.TrimSpace(s[:nl])
	if tag != "" && !strings.ContainsAny(tag, "{[\"") {
		return s[nl+1:]
	}
	return s
}

// ExtractJSON is the strict gate: it strips an optional code fence and
// parses the remainder as JSON of type T. Prose around the object is not
// tolerated. Failures are returned as *ParseError wrapping ErrInvalidOutput.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	result, err := decodeStrict[T](StripFences(raw))
	if err != nil {
		return zero, &ParseError{Raw: raw, Cause: err}
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, &ParseError{Raw: raw, Cause: fmt.Errorf("validation failed: %w", err)}
		}
	}

	return result, nil
}

// ExtractJSONTolerant walks the degradation ladder: fence strip, strict
// parse, brace scan, raw text. It never fails; callers inspect Stage.
func ExtractJSONTolerant[T any](raw string, validator SchemaValidator[T]) Parsed[T] {
	out := Parsed[T]{Raw: raw, Stage: StageRawText}

	stripped := StripFences(raw)
	out.Fenced = stripped != raw

	v, err := decodeValidated(stripped, validator)
	if err == nil {
		out.Value, out.Stage = v, StageStrict
		return out
	}
	out.Err = err

	cleaned := stripCodeFences(raw)
	for _, candidate := range []string{extractJSONBlock(cleaned), greedyJSONBlock(cleaned)} {
		if candidate == "" {
			continue
		}
		candidate = normalizeLeadingDecimalNumbers(stripJSONComments(candidate))
		v, err := decodeValidated(candidate, validator)
		if err != nil {
			out.Err = err
			continue
		}
		out.Value, out.Stage, out.Err = v, StageBraceScan, nil
		return out
	}

	return out
}

func decodeStrict[T any](s string) (T, error) {
	var result T
	err := json.Unmarshal([]byte(s), &result)
	return result, err
}

func decodeValidated[T any](s string, validator SchemaValidator[T]) (T, error) {
	v, err := decodeStrict[T](s)
	if err != nil {
		return v, err
	}
	if validator != nil {
		if err := validator(v); err != nil {
			var zero T
			return zero, fmt.Errorf("validation failed: %w", err)
		}
	}
	return v, nil
}

// greedyJSONBlock returns everything from the first '{' to the last '}'.
func greedyJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stripCodeFences drops every fence line, keeping the text both inside and
// outside fences so the brace scan can still see the object.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), genericFence) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// stripJSONComments removes C-style line comments (// ...) outside of JSON string
// values. LLMs sometimes emit comments in JSON output despite instructions not to.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		// Line comment: skip to end of line
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}

		// Block comment: skip to closing */
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i+1 < len(s) {
				if s[i] == '*' && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// normalizeLeadingDecimalNumbers rewrites invalid JSON numeric literals such as
// ".8" or "-.3" into valid forms "0.8" and "-0.3" outside string values.
func normalizeLeadingDecimalNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}

		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}

		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString {
			b.WriteByte(c)
			continue
		}

		// JSON does not allow ".5" or "-.5". Some models emit these forms.
		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}

		b.WriteByte(c)
	}

	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\r' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
