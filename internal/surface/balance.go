package surface

// Balance adds the missing partners of brackets and quotes.
//
// Opens are matched by identity rather than strict nesting: a closer removes
// the most recent open of its kind wherever it sits in the stack. Left
// counterparts of unmatched closers are inserted at the front, right
// counterparts of unmatched opens are appended at the end. The input slice
// is left untouched.
func Balance(tokens []string) []string {
	// both stacks keep the most recent entry first
	var opens, closes []string

	for _, token := range tokens {
		switch {
		case IsSymmetricQuote(token) && indexOf(opens, token) >= 0:
			opens = removeAt(opens, indexOf(opens, token))
		case IsLeftBracket(token) || IsSymmetricQuote(token):
			opens = prepend(opens, token)
		case IsRightBracket(token):
			if i := indexOf(opens, counterpart(token)); i >= 0 {
				opens = removeAt(opens, i)
			} else {
				closes = prepend(closes, token)
			}
		}
	}

	out := make([]string, 0, len(tokens)+len(opens)+len(closes))
	for i := len(closes) - 1; i >= 0; i-- {
		out = append(out, counterpart(closes[i]))
	}
	out = append(out, tokens...)
	for _, open := range opens {
		out = append(out, counterpart(open))
	}
	return out
}

func indexOf(stack []string, token string) int {
	for i, s := range stack {
		if s == token {
			return i
		}
	}
	return -1
}

func removeAt(stack []string, i int) []string {
	return append(stack[:i:i], stack[i+1:]...)
}

func prepend(stack []string, token string) []string {
	return append([]string{token}, stack...)
}
