package lex

import (
	"strings"

	"github.com/dekarrin/transcribble/tsexpr/value"
)

// Fragment is one piece of a walked template: either a run of literal text
// or a parsed call (an array Value) awaiting evaluation.
type Fragment struct {
	IsCall bool
	Text   string
	Call   value.Value
}

// Walk scans template and splits it into alternating text/call Fragments,
// grounded in original_source/translator/src/translator.cpp's interpolate().
// A doubled opening delimiter collapses to one literal character and is
// folded into the surrounding text rather than becoming its own Fragment, so
// that a non-empty template containing no opening delimiter always walks to
// exactly one all-text Fragment equal to the input (the round-trip property in
// spec.md §8).
func Walk(template string, opts Options) ([]Fragment, error) {
	var frags []Fragment
	var textBuf strings.Builder

	flush := func() {
		if textBuf.Len() > 0 {
			frags = append(frags, Fragment{Text: textBuf.String()})
			textBuf.Reset()
		}
	}

	s := template
	for {
		idx := strings.IndexByte(s, opts.OpeningDelim)
		if idx < 0 {
			textBuf.WriteString(s)
			break
		}
		textBuf.WriteString(s[:idx])
		s = s[idx+1:]

		if len(s) > 0 && s[0] == opts.OpeningDelim {
			textBuf.WriteByte(opts.OpeningDelim)
			s = s[1:]
			continue
		}

		flush()
		rdr := New(s, opts)
		call, err := rdr.ConsumeList(true)
		if err != nil {
			return nil, err
		}
		frags = append(frags, Fragment{IsCall: true, Call: call})
		s = rdr.Remaining()
	}
	flush()

	return frags, nil
}
