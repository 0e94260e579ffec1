package config

import (
	"fmt"
	"strings"

	"buildcfg.dev/cli/internal/core/target"
)

// SyntaxError reports malformed selector or flag syntax. It is produced at
// load time; resolution never sees invalid input.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %q at offset %d: %s", e.Input, e.Pos, e.Msg)
}

// ParseSelector parses a cfg() expression into a tagged selector.
//
// Supported forms:
//
//	cfg(all())                          universal
//	cfg(platform = "web")               attribute equality
//	cfg(not(platform = "web"))          negation
//	cfg(all(a = "1", b = "2"))          conjunction
//	cfg(any(a = "1", b = "2"))          disjunction
//
// Composites nest arbitrarily. The selector text carries no side effects; it
// compiles to the closed variant set in the target package.
func ParseSelector(input string) (target.Selector, error) {
	p := &selectorParser{input: input}
	p.skipSpace()
	if !p.consumeWord("cfg") {
		return nil, p.errorf("selector must be a cfg() expression")
	}
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.errorf("expected '(' after cfg")
	}

	selector, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.consume(')') {
		return nil, p.errorf("expected ')' to close cfg expression")
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input")
	}
	return selector, nil
}

type selectorParser struct {
	input string
	pos   int
}

func (p *selectorParser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Input: p.input, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *selectorParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *selectorParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *selectorParser) consume(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

// consumeWord consumes an exact identifier, refusing partial matches like
// "cfgx".
func (p *selectorParser) consumeWord(word string) bool {
	if !strings.HasPrefix(p.input[p.pos:], word) {
		return false
	}
	next := p.pos + len(word)
	if next < len(p.input) && isIdentByte(p.input[next]) {
		return false
	}
	p.pos = next
	return true
}

func (p *selectorParser) ident() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *selectorParser) quotedString() (string, error) {
	if !p.consume('"') {
		return "", p.errorf("expected quoted attribute value")
	}
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '"' {
			value := p.input[start:p.pos]
			p.pos++
			return value, nil
		}
		if c == '\n' {
			return "", p.errorf("unterminated attribute value")
		}
		p.pos++
	}
	return "", p.errorf("unterminated attribute value")
}

func (p *selectorParser) parseExpr() (target.Selector, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected attribute name or all/any/not")
	}
	p.skipSpace()

	switch p.peek() {
	case '(':
		return p.parseComposite(name)
	case '=':
		p.pos++
		p.skipSpace()
		value, err := p.quotedString()
		if err != nil {
			return nil, err
		}
		return target.AttributeEquals{Name: name, Value: value}, nil
	default:
		return nil, p.errorf("expected '=' or '(' after %q", name)
	}
}

func (p *selectorParser) parseComposite(name string) (target.Selector, error) {
	p.consume('(')

	switch name {
	case "not":
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(')') {
			return nil, p.errorf("expected ')' to close not()")
		}
		return target.Not{Inner: inner}, nil

	case "all", "any":
		members, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if name == "all" {
			if len(members) == 0 {
				return target.Universal{}, nil
			}
			return target.AllOf{Selectors: members}, nil
		}
		return target.AnyOf{Selectors: members}, nil

	default:
		return nil, p.errorf("unknown selector function %q", name)
	}
}

func (p *selectorParser) parseExprList() ([]target.Selector, error) {
	var members []target.Selector
	p.skipSpace()
	if p.consume(')') {
		return members, nil
	}
	for {
		member, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		p.skipSpace()
		if p.consume(',') {
			p.skipSpace()
			// Allow a trailing comma before the closing parenthesis.
			if p.consume(')') {
				return members, nil
			}
			continue
		}
		if p.consume(')') {
			return members, nil
		}
		return nil, p.errorf("expected ',' or ')' in selector list")
	}
}
