// Package naming derives the canonical accessor and mutator method names
// for plain-data keys.
//
// A key such as "user_name", "user-name" or "userName" is split into tokens,
// every token gets its first letter upper-cased and the result is prefixed:
//
//	user_name -> UserName -> GetUserName / SetUserName
//	orderID   -> OrderID  -> GetOrderID  / SetOrderID
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	accessorPrefix = "Get"
	mutatorPrefix  = "Set"
)

// Accessor returns the accessor method name for key.
func Accessor(key string) string {
	return accessorPrefix + Camel(key)
}

// Mutator returns the mutator method name for key.
func Mutator(key string) string {
	return mutatorPrefix + Camel(key)
}

// Camel converts key to UpperCamelCase. Separators are dropped and the
// casing inside tokens is kept, so acronyms survive ("http_URL" -> "HttpURL").
func Camel(key string) string {
	var b strings.Builder

	b.Grow(len(key))

	for _, tok := range Tokenize(key) {
		r, size := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(tok[size:])
	}

	return b.String()
}

// Tokenize splits an identifier on separators and camel-case boundaries.
//
//   - "user_name"       -> ["user", "name"]
//   - "customerName"    -> ["customer", "Name"]
//   - "XMLParser"       -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()

			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports whether runes[i] opens a new token: a lower-to-upper
// transition ("orderId") or the last capital of an acronym followed by a
// lower-case letter ("XMLParser").
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
