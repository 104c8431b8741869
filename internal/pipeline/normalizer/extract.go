package normalizer

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

const (
	jsonFence = "```json"
	fence     = "```"
)

var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// extract locates the JSON object candidate in text. Only the first fenced
// block is searched, and the candidate spans from its first '{' to its last
// '}'. Braces inside string values are not tokenised, so a '}' in a trailing
// string value widens the span.
func extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	segment := text
	switch {
	case strings.Contains(text, jsonFence):
		segment = fencedBody(text, jsonFence)
	case strings.Contains(text, fence):
		segment = fencedBody(text, fence)
	}

	start := strings.Index(segment, "{")
	end := strings.LastIndex(segment, "}")
	if start < 0 || end < start {
		return "", false
	}
	return segment[start : end+1], true
}

// fencedBody returns the text after the first opening marker up to the next
// closing fence, or to the end of text when the fence is never closed.
func fencedBody(text, opening string) string {
	body := text[strings.Index(text, opening)+len(opening):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return body
}

// repair rewrites single quotes as double quotes and drops trailing commas.
// Apostrophes inside values are rewritten too and will usually break parsing.
func repair(candidate string) string {
	out := strings.ReplaceAll(candidate, "'", `"`)
	out = trailingCommaObject.ReplaceAllString(out, "}")
	out = trailingCommaArray.ReplaceAllString(out, "]")
	return out
}

// decode runs extraction, repair and parsing. Numbers are kept as json.Number
// so integral values can be told apart from floats.
func decode(text string) (map[string]any, bool) {
	candidate, ok := extract(text)
	if !ok {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(repair(candidate))))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return fields, true
}
