// Package formula implements the restricted arithmetic language used for dataset
// composition and reserving class rules.
package formula

import "strings"

// Op is the sign preceding a formula item.
type Op byte

const (
	// Plus marks an added item, and is the default sign.
	Plus Op = '+'
	// Minus marks a subtracted item.
	Minus Op = '-'
)

func (o Op) String() string { return string(o) }

// Term is one signed item of a formula.
type Term struct {
	Item string
	Op   Op
}

// Tokenize splits s into signed items. An item is either a double-quoted string or a
// run of words separated by whitespace. Characters that cannot start an item, such as
// '*', '/' and parentheses, are skipped; each item takes the '+' or '-' directly before it.
func Tokenize(s string) []Term {
	var terms []Term
	for i := 0; i < len(s); {
		term, end, ok := matchTerm(s, i)
		if !ok {
			i++
			continue
		}
		i = end
		if term.Item != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Items returns only the item names of s, in order.
func Items(s string) []string {
	terms := Tokenize(s)
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Item
	}
	return out
}

func matchTerm(s string, start int) (Term, int, bool) {
	op := Plus
	i := start
	if s[i] == '+' || s[i] == '-' {
		op = Op(s[i])
		i++
	}
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) {
		return Term{}, 0, false
	}

	if s[i] == '"' {
		closing := strings.IndexByte(s[i+1:], '"')
		if closing < 0 {
			return Term{}, 0, false
		}
		item := strings.TrimSpace(s[i+1 : i+1+closing])
		return Term{Item: item, Op: op}, i + closing + 2, true
	}

	if !isWord(s[i]) {
		return Term{}, 0, false
	}

	var words []string
	for {
		j := i
		for j < len(s) && isWord(s[j]) {
			j++
		}
		words = append(words, s[i:j])
		i = j

		k := i
		for k < len(s) && isSpace(s[k]) {
			k++
		}
		if k == i || k >= len(s) || !isWord(s[k]) {
			break
		}
		i = k
	}
	return Term{Item: strings.Join(words, " "), Op: op}, i, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isWord(c byte) bool {
	if isSpace(c) {
		return false
	}
	switch c {
	case '"', '+', '*', '/', '(', ')', '-':
		return false
	}
	return true
}
