package ai

// ExtractJSON returns the first top-level JSON object embedded in text, or
// an empty string when none exists. Models wrap their JSON in prose or code
// fences often enough that a simple Unmarshal of the whole response fails;
// brace matching that respects string literals and escapes is robust to all
// of the wrappings seen so far.
func ExtractJSON(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			if start >= 0 {
				inString = !inString
			}
		case '{':
			if inString {
				continue
			}
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if inString || start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
