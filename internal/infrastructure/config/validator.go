package config

import "strings"

// ValidateFlagToken rejects malformed compiler flag tokens at load time.
// Tokens pass to the compiler verbatim, so the only structural requirements
// are that a token is non-empty and free of embedded line breaks or
// surrounding whitespace.
func ValidateFlagToken(token string) error {
	switch {
	case token == "":
		return &SyntaxError{Input: token, Msg: "empty flag token"}
	case strings.ContainsAny(token, "\n\r"):
		return &SyntaxError{Input: token, Msg: "flag token contains a line break"}
	case token != strings.TrimSpace(token):
		return &SyntaxError{Input: token, Msg: "flag token has leading or trailing whitespace"}
	default:
		return nil
	}
}

// ValidateFlagTokens validates every token of a flag entry.
func ValidateFlagTokens(tokens []string) error {
	for _, token := range tokens {
		if err := ValidateFlagToken(token); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLintID rejects empty or whitespace-bearing lint identifiers.
func ValidateLintID(id string) error {
	switch {
	case id == "":
		return &SyntaxError{Input: id, Msg: "empty lint identifier"}
	case strings.ContainsAny(id, " \t\n\r"):
		return &SyntaxError{Input: id, Msg: "lint identifier contains whitespace"}
	default:
		return nil
	}
}
