package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Initials takes the first letter of up to two words, upper-cased. "?" when name is blank.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// FirstName is the first word of name, or fallback.
func FirstName(name, fallback string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return fallback
	}
	return words[0]
}

// Plural picks singular or plural by n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// FileSize renders bytes in B, KB or MB.
func FileSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

var avatarColors = []string{"blue", "teal", "purple", "orange"}

// AvatarColor cycles through the avatar palette.
func AvatarColor(i int) string {
	if i < 0 {
		i = -i
	}
	return avatarColors[i%len(avatarColors)]
}

// Title upper-cases the first letter, e.g. "landlord" -> "Landlord".
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
