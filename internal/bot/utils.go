package bot

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lithammer/dedent"
)

func formatReplyText(text string, a ...any) string {
	text = strings.TrimSpace(dedent.Dedent(text))
	if len(a) == 0 {
		return text
	}
	return fmt.Sprintf(text, a...)
}

// parseCommand splits "/cmd@botname arg1 arg2" into "/cmd" and its args.
func parseCommand(s string) (string, []string) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "", nil
	}
	cmd, _, _ := strings.Cut(parts[0], "@")
	return strings.ToLower(cmd), parts[1:]
}

// maxMessageLength is Telegram's message text limit in UTF-16 code units.
const maxMessageLength = 4096

// splitMessage cuts text into parts of at most limit UTF-16 code units.
// Parts break after a newline when possible so Markdown entities, which never
// span lines in generated replies, stay intact. A part never ends in a lone
// escape backslash.
func splitMessage(text string, limit int) []string {
	if utf16Len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for utf16Len(text) > limit {
		cut := prefixWithin(text, limit)
		if cut == 0 {
			_, cut = utf8.DecodeRuneInString(text)
		}
		if nl := strings.LastIndexByte(text[:cut], '\n'); nl > 0 {
			cut = nl + 1
		} else {
			for cut > 1 && text[cut-1] == '\\' {
				cut--
			}
		}
		if part := strings.TrimRight(text[:cut], "\n"); part != "" {
			parts = append(parts, part)
		}
		text = text[cut:]
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, text)
	}
	return parts
}

// prefixWithin returns the byte length of the longest prefix of text that
// fits in limit UTF-16 code units.
func prefixWithin(text string, limit int) int {
	n := 0
	for i, r := range text {
		size := utf16.RuneLen(r)
		if size < 0 {
			size = 1
		}
		if n+size > limit {
			return i
		}
		n += size
	}
	return len(text)
}

func utf16Len(text string) int {
	n := 0
	for _, r := range text {
		if size := utf16.RuneLen(r); size > 0 {
			n += size
		} else {
			n++
		}
	}
	return n
}
