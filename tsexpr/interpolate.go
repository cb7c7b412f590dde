package tsexpr

import (
	"strings"

	"github.com/dekarrin/transcribble/tsexpr/lex"
	"github.com/dekarrin/transcribble/tsexpr/tserr"
	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Preparsed is the result of Parse: a template already split into its
// literal-text and call fragments, ready to be evaluated any number of
// times via InterpolateParsed without re-scanning or re-lexing the source
// text.
type Preparsed struct {
	frags []lex.Fragment
}

// Parse scans template into a Preparsed, using this Scope's current
// Options for delimiters and syntax strictness.
func (s *Scope) Parse(template string) (Preparsed, error) {
	frags, err := lex.Walk(template, s.opts.Options)
	if err != nil {
		return Preparsed{}, err
	}
	return Preparsed{frags: frags}, nil
}

// ParseCall parses callText as a single top-level call (a delimited list),
// without requiring the caller to supply the opening delimiter - ParseCall
// adds the implicit outer list itself. Non-space text left after the
// call's closing delimiter is a syntax error.
func (s *Scope) ParseCall(callText string) (value.Value, error) {
	rdr := lex.New(callText, s.opts.Options)
	call, err := rdr.ConsumeList(false)
	if err != nil {
		return value.OfNull(), err
	}
	if rest := strings.TrimSpace(rdr.Remaining()); rest != "" {
		return value.OfNull(), tserr.New("unexpected text after call: "+rest, tserr.ErrSyntax)
	}
	return call, nil
}

// Interpolate parses and evaluates template in one step, equivalent to
// s.InterpolateParsed(p) for p, _ := s.Parse(template) except that a parse
// error is routed through the error handler exactly like any other soft
// error instead of being returned to the caller.
func (s *Scope) Interpolate(template string) string {
	p, err := s.Parse(template)
	if err != nil {
		if te, ok := err.(tserr.Error); ok && s.onError == nil {
			panic(te)
		}
		return s.reportError(err.Error())
	}
	return s.InterpolateParsed(p)
}

// InterpolateParsed evaluates every call Fragment of p in turn and
// concatenates the result with p's literal text, leaving p usable again
// afterward (the borrowing overload, matching the original's
// interpolate_parsed(json const&)).
func (s *Scope) InterpolateParsed(p Preparsed) string {
	var sb strings.Builder
	for _, f := range p.frags {
		if !f.IsCall {
			sb.WriteString(f.Text)
			continue
		}
		sb.WriteString(s.SafeEval(f.Call).String())
	}
	return sb.String()
}

// InterpolateParsedMove is InterpolateParsed, but may freely reuse or
// discard p's internal storage: callers that will not use p again after
// this call should prefer it (the consuming overload, matching the
// original's interpolate_parsed(json&&)).
func (s *Scope) InterpolateParsedMove(p Preparsed) string {
	result := s.InterpolateParsed(p)
	p.frags = nil
	return result
}
