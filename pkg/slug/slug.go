// Package slug derives URL identifiers from human-readable Cyrillic text.
//
// Slugs are external keys: once issued they are stored and never recomputed,
// so the transliteration table below must stay byte-for-byte stable. It is
// carried over from the legacy system as-is, including the 'э' → "r" mapping
// (a known quirk kept for compatibility with already-issued slugs). One
// deliberate deviation: underscores collapse to hyphens like any other
// separator, while the legacy slugs kept them verbatim.
package slug

import (
	"fmt"
	"strings"
	"time"
)

var translitTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ь': "", 'ы': "y", 'ъ': "", 'э': "r",
	'ю': "yu", 'я': "ya",
}

// TranslitToEng lowercases s and maps each Cyrillic letter through the
// fixed substitution table. Runes without a mapping pass through unchanged.
func TranslitToEng(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if repl, ok := translitTable[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slugify lowercases s, replaces every non-alphanumeric ASCII run with a
// single hyphen and trims leading/trailing hyphens. Non-ASCII runes that
// survived transliteration are dropped.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r > 127:
			// untransliterated rune, drop silently
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Make transliterates then slugifies.
func Make(s string) string {
	return Slugify(TranslitToEng(s))
}

// ForEvent builds the immutable event slug from the event name and the
// zero-padded day and month of its start date.
func ForEvent(name string, startDate time.Time) string {
	return Make(fmt.Sprintf("%s-%02d-%02d", name, startDate.Day(), int(startDate.Month())))
}

// ForUser builds the user slug from name parts and role; callers fall back
// to Make(username) when any part is empty.
func ForUser(firstName, lastName, role string) string {
	return Make(fmt.Sprintf("%s-%s-%s", firstName, lastName, role))
}

// ForBlock builds the block slug from its number.
func ForBlock(number int) string {
	return Make(fmt.Sprintf("block-%d", number))
}
