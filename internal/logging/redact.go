package logging

// RedactToken masks an API key for logging, keeping the first few
// characters for correlation.
//
//	"sk_live_abc123xyz" -> "sk_live_..."
//	""                  -> "[empty]"
func RedactToken(t string) string {
	if len(t) == 0 {
		return "[empty]"
	}
	if len(t) <= 8 {
		return t[:1] + "..."
	}
	return t[:8] + "..."
}
