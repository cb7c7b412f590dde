// Package lex implements the call-notation reader: the atom/list grammar
// described in spec.md §4.2, and the template-interpolation scanner that
// locates delimited calls embedded in free text.
//
// The reader is hand-written recursive descent, grounded directly in
// original_source/translator/src/translator.cpp's consume_atom / consume_list
// / consume_value / consume_c_string family rather than on a generated
// parser: the call grammar is small and not context-free-grammar shaped, so
// there is no natural role here for a parser-generator framework.
package lex

import (
	"strconv"
	"strings"

	"github.com/dekarrin/transcribble/tsexpr/tserr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Reader consumes Values from an advancing view of source text.
type Reader struct {
	src  string
	opts Options
}

// New creates a Reader over src using opts.
func New(src string, opts Options) *Reader {
	return &Reader{src: src, opts: opts}
}

// Remaining returns the not-yet-consumed source text.
func (r *Reader) Remaining() string { return r.src }

// AtEnd returns whether the reader has no more input.
func (r *Reader) AtEnd() bool { return len(r.src) == 0 }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func (r *Reader) trimLeft() {
	r.src = strings.TrimLeft(r.src, " \t\n\v\f\r")
}

func (r *Reader) peek() (byte, bool) {
	if len(r.src) == 0 {
		return 0, false
	}
	return r.src[0], true
}

func (r *Reader) advance() byte {
	c := r.src[0]
	r.src = r.src[1:]
	return c
}

func (r *Reader) consumeByte(b byte) bool {
	if len(r.src) > 0 && r.src[0] == b {
		r.src = r.src[1:]
		return true
	}
	return false
}

// ConsumeValue reads a single Value: a list if the next character is the
// opening delimiter, otherwise an atom.
func (r *Reader) ConsumeValue() (value.Value, error) {
	r.trimLeft()
	if r.consumeByte(r.opts.OpeningDelim) {
		return r.ConsumeList(true)
	}
	return r.ConsumeAtom()
}

// ConsumeList reads a whitespace/comma-separated sequence of Values up to
// the closing delimiter. The opening delimiter, if any, must already have
// been consumed by the caller (ConsumeValue and Walk consume it; top-level
// signature parsing does not have one to consume). If requireClosingDelim is true, a
// missing closing delimiter is a syntax error in strict mode; otherwise (or
// when requireClosingDelim is false) its absence is tolerated.
func (r *Reader) ConsumeList(requireClosingDelim bool) (value.Value, error) {
	var elems []value.Value
	r.trimLeft()
	for {
		if len(r.src) == 0 {
			break
		}
		if b, ok := r.peek(); ok && b == r.opts.ClosingDelim {
			break
		}
		v, err := r.ConsumeValue()
		if err != nil {
			return value.OfNull(), err
		}
		elems = append(elems, v)
		r.trimLeft()
	}

	if !r.consumeByte(r.opts.ClosingDelim) && requireClosingDelim && r.opts.StrictSyntax {
		return value.OfNull(), tserr.New("missing closing delimiter", tserr.ErrSyntax)
	}

	return value.OfArray(elems), nil
}

func (r *Reader) isAtomTerminator(c byte) bool {
	return isSpace(c) || c == r.opts.ClosingDelim || c == ','
}

// ConsumeAtom reads a single scalar token: a quoted string, a lone comma, or
// the longest run up to the next whitespace/closing-delimiter/comma,
// interpreted as a reserved literal (true/false/null), a hex/signed/unsigned
// /float number in that order, falling back to a plain string.
func (r *Reader) ConsumeAtom() (value.Value, error) {
	r.trimLeft()

	if b, ok := r.peek(); ok && (b == '\'' || b == '"') {
		s, err := r.consumeCString()
		if err != nil {
			return value.OfNull(), err
		}
		return value.OfString(s), nil
	}

	if r.consumeByte(',') {
		return value.OfString(","), nil
	}

	start := 0
	end := len(r.src)
	for i := 0; i < len(r.src); i++ {
		if r.isAtomTerminator(r.src[i]) {
			end = i
			break
		}
	}
	token := r.src[start:end]
	r.src = r.src[end:]
	r.trimLeft()

	switch token {
	case "true":
		return value.OfBool(true), nil
	case "false":
		return value.OfBool(false), nil
	case "null":
		return value.OfNull(), nil
	}

	if r.opts.HexPrefix != 0 && len(token) > 2 && token[0] == '0' && token[1] == r.opts.HexPrefix {
		if u, err := strconv.ParseUint(token[2:], 16, 64); err == nil {
			return value.OfUint(u), nil
		}
	}

	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return value.OfInt(i), nil
	}
	if u, err := strconv.ParseUint(token, 10, 64); err == nil {
		return value.OfUint(u), nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return value.OfFloat(f), nil
	}

	return value.OfString(token), nil
}

func (r *Reader) consumeCString() (string, error) {
	delim := r.advance()
	var sb strings.Builder

	for {
		if len(r.src) == 0 {
			if r.opts.StrictSyntax {
				return "", tserr.New("unterminated string literal", tserr.ErrSyntax)
			}
			return sb.String(), nil
		}
		c := r.advance()
		if c == delim {
			return sb.String(), nil
		}
		if c == '\\' {
			if len(r.src) == 0 {
				if r.opts.StrictSyntax {
					return "", tserr.New("unterminated string literal", tserr.ErrSyntax)
				}
				return sb.String(), nil
			}
			esc := r.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case '\\':
				sb.WriteByte('\\')
			default:
				if r.opts.StrictSyntax {
					return "", tserr.New("unknown escape character '\\"+string(esc)+"'", tserr.ErrSyntax)
				}
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(c)
	}
}
