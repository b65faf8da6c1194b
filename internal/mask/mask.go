// Package mask partially redacts customer contact details shown to
// moving companies that have not unlocked a request yet.
package mask

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name keeps the first given name and the initial of the last one:
// "Ion Popescu" becomes "Ion P.". A single word keeps only its first letter.
func Name(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		r, size := utf8.DecodeRuneInString(parts[0])
		return string(r) + strings.Repeat("*", utf8.RuneCountInString(parts[0][size:]))
	}

	last, _ := utf8.DecodeRuneInString(parts[len(parts)-1])
	return parts[0] + " " + string(unicode.ToUpper(last)) + "."
}

// Email keeps up to two characters of the local part and the domain:
// "ion.popescu@gmail.com" becomes "io*********@gmail.com". At least one
// character of the local part is always masked.
func Email(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return strings.Repeat("*", utf8.RuneCountInString(email))
	}

	runes := []rune(local)
	keep := max(min(2, len(runes)-1), 0)
	return string(runes[:keep]) + strings.Repeat("*", len(runes)-keep) + "@" + domain
}

// Phone keeps the first four digits and any separators:
// "0722 123 456" becomes "0722 *** ***".
func Phone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
			if digits > 4 {
				b.WriteByte('*')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
