// Package analysis parses starting-hand range notation and expands it into
// weighted sets of concrete hole cards.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lox/holdem-equity/poker"
)

// Suitedness restricts a non-pair hand class.
type Suitedness uint8

const (
	AnySuits Suitedness = iota
	SuitedOnly
	OffsuitOnly
)

func (s Suitedness) suffix() string {
	switch s {
	case SuitedOnly:
		return "s"
	case OffsuitOnly:
		return "o"
	}
	return ""
}

// Pattern is one parsed range term without its weight. The concrete types
// are PairPattern, ClassPattern, PlusPattern, SpanPattern and ComboPattern.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// PairPattern is a pocket pair, e.g. "TT".
type PairPattern struct {
	Rank uint8
}

// ClassPattern is a non-pair class, e.g. "AKs", "AKo" or "AK".
type ClassPattern struct {
	High  uint8
	Low   uint8
	Suits Suitedness
}

// PlusPattern is a base class and every stronger class of the same shape,
// e.g. "77+" or "ATo+".
type PlusPattern struct {
	Base Pattern
}

// SpanPattern is an inclusive run of classes between two endpoints, e.g.
// "22-55", "A2s-A5s" or "KQs-87s".
type SpanPattern struct {
	From Pattern
	To   Pattern
}

// ComboPattern is one concrete starting hand, e.g. "AhKd".
type ComboPattern struct {
	Cards poker.HoleCards
}

func (PairPattern) isPattern()  {}
func (ClassPattern) isPattern() {}
func (PlusPattern) isPattern()  {}
func (SpanPattern) isPattern()  {}
func (ComboPattern) isPattern() {}

func (p PairPattern) String() string {
	return string([]byte{poker.RankChar(p.Rank), poker.RankChar(p.Rank)})
}

func (p ClassPattern) String() string {
	return string([]byte{poker.RankChar(p.High), poker.RankChar(p.Low)}) + p.Suits.suffix()
}

func (p PlusPattern) String() string  { return p.Base.String() + "+" }
func (p SpanPattern) String() string  { return p.From.String() + "-" + p.To.String() }
func (p ComboPattern) String() string { return p.Cards.String() }

// Token is a parsed range term.
type Token struct {
	Pattern Pattern
	Weight  float64
}

func (t Token) String() string {
	if t.Weight == 1 {
		return t.Pattern.String()
	}
	return t.Pattern.String() + ":" + strconv.FormatFloat(t.Weight, 'g', -1, 64)
}

// RangeSyntaxError reports a malformed range term. Err holds the card
// parsing error behind a malformed combo, if any.
type RangeSyntaxError struct {
	Term   string
	Reason string
	Err    error
}

func (e *RangeSyntaxError) Error() string {
	return fmt.Sprintf("invalid range term %q: %s", e.Term, e.Reason)
}

func (e *RangeSyntaxError) Unwrap() error {
	return e.Err
}

// Parse splits range text into tokens. Terms are separated by commas and
// whitespace inside a term is ignored:
//
//	"QQ+, AKs, AQo:0.5, A5s-A2s, KQs-87s, AhKd"
//
// Empty text yields no tokens.
func Parse(text string) ([]Token, error) {
	var tokens []Token
	for raw := range strings.SplitSeq(text, ",") {
		term := strings.Join(strings.Fields(raw), "")
		if term == "" {
			continue
		}
		tok, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func parseTerm(term string) (Token, error) {
	body, weight := term, 1.0
	if idx := strings.LastIndexByte(term, ':'); idx >= 0 {
		w, err := strconv.ParseFloat(term[idx+1:], 64)
		if err != nil || math.IsNaN(w) || w <= 0 || w > 1 {
			return Token{}, &RangeSyntaxError{Term: term, Reason: "weight must be a number in (0, 1]"}
		}
		body, weight = term[:idx], w
	}

	pattern, err := parsePattern(body)
	if err != nil {
		var serr *RangeSyntaxError
		if errors.As(err, &serr) {
			serr.Term = term
		}
		return Token{}, err
	}
	return Token{Pattern: pattern, Weight: weight}, nil
}

func parsePattern(body string) (Pattern, error) {
	if from, to, ok := strings.Cut(body, "-"); ok {
		return parseSpan(body, from, to)
	}

	if base, ok := strings.CutSuffix(body, "+"); ok {
		p, err := parseSimple(base)
		if err != nil {
			return nil, err
		}
		if _, isCombo := p.(ComboPattern); isCombo {
			return nil, &RangeSyntaxError{Term: body, Reason: "'+' cannot follow a specific combo"}
		}
		return PlusPattern{Base: p}, nil
	}

	return parseSimple(body)
}

func parseSpan(body, from, to string) (Pattern, error) {
	start, err := parseSimple(from)
	if err != nil {
		return nil, err
	}
	end, err := parseSimple(to)
	if err != nil {
		return nil, err
	}

	switch a := start.(type) {
	case PairPattern:
		if _, ok := end.(PairPattern); !ok {
			return nil, &RangeSyntaxError{Term: body, Reason: "span endpoints must both be pairs"}
		}
	case ClassPattern:
		b, ok := end.(ClassPattern)
		if !ok {
			return nil, &RangeSyntaxError{Term: body, Reason: "span endpoints must have the same shape"}
		}
		if a.Suits != b.Suits {
			return nil, &RangeSyntaxError{Term: body, Reason: "span endpoints must have the same suitedness"}
		}
		if a.High != b.High && a.High-a.Low != b.High-b.Low {
			return nil, &RangeSyntaxError{Term: body, Reason: "span endpoints must share a high card or a gap"}
		}
	default:
		return nil, &RangeSyntaxError{Term: body, Reason: "span endpoints must be hand classes"}
	}
	return SpanPattern{From: start, To: end}, nil
}

// parseSimple parses a pair, a class or a concrete combo.
func parseSimple(s string) (Pattern, error) {
	switch len(s) {
	case 2, 3:
	case 4:
		h, err := poker.ParseHoleCards(s)
		if err != nil {
			return nil, &RangeSyntaxError{Term: s, Reason: err.Error(), Err: err}
		}
		return ComboPattern{Cards: h}, nil
	default:
		return nil, &RangeSyntaxError{Term: s, Reason: "malformed hand"}
	}

	r1, ok := poker.ParseRank(s[0])
	if !ok {
		return nil, &RangeSyntaxError{Term: s, Reason: fmt.Sprintf("unknown rank %q", s[0])}
	}
	r2, ok := poker.ParseRank(s[1])
	if !ok {
		return nil, &RangeSyntaxError{Term: s, Reason: fmt.Sprintf("unknown rank %q", s[1])}
	}

	suits := AnySuits
	if len(s) == 3 {
		switch s[2] {
		case 's', 'S':
			suits = SuitedOnly
		case 'o', 'O':
			suits = OffsuitOnly
		default:
			return nil, &RangeSyntaxError{Term: s, Reason: fmt.Sprintf("unknown modifier %q", s[2])}
		}
	}

	if r1 == r2 {
		if suits != AnySuits {
			return nil, &RangeSyntaxError{Term: s, Reason: "pairs cannot be suited or offsuit"}
		}
		return PairPattern{Rank: r1}, nil
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	return ClassPattern{High: r1, Low: r2, Suits: suits}, nil
}

// classes lists the rank classes a pattern covers, or the single combo for
// a ComboPattern.
func classes(p Pattern) ([]ClassPattern, []poker.HoleCards) {
	switch p := p.(type) {
	case PairPattern:
		return []ClassPattern{{High: p.Rank, Low: p.Rank}}, nil
	case ClassPattern:
		return []ClassPattern{p}, nil
	case ComboPattern:
		return nil, []poker.HoleCards{p.Cards}
	case PlusPattern:
		var out []ClassPattern
		switch b := p.Base.(type) {
		case PairPattern:
			for r := b.Rank; r <= poker.Ace; r++ {
				out = append(out, ClassPattern{High: r, Low: r})
			}
		case ClassPattern:
			for low := b.Low; low < b.High; low++ {
				out = append(out, ClassPattern{High: b.High, Low: low, Suits: b.Suits})
			}
		}
		return out, nil
	case SpanPattern:
		return spanClasses(p), nil
	}
	return nil, nil
}

func spanClasses(p SpanPattern) []ClassPattern {
	var out []ClassPattern
	switch a := p.From.(type) {
	case PairPattern:
		b := p.To.(PairPattern)
		lo, hi := min(a.Rank, b.Rank), max(a.Rank, b.Rank)
		for r := lo; r <= hi; r++ {
			out = append(out, ClassPattern{High: r, Low: r})
		}
	case ClassPattern:
		b := p.To.(ClassPattern)
		if a.High == b.High {
			lo, hi := min(a.Low, b.Low), max(a.Low, b.Low)
			for low := lo; low <= hi; low++ {
				out = append(out, ClassPattern{High: a.High, Low: low, Suits: a.Suits})
			}
			return out
		}
		gap := a.High - a.Low
		lo, hi := min(a.High, b.High), max(a.High, b.High)
		for high := lo; high <= hi; high++ {
			out = append(out, ClassPattern{High: high, Low: high - gap, Suits: a.Suits})
		}
	}
	return out
}

// combos expands a single class into its concrete hole cards.
func (p ClassPattern) combos() []poker.HoleCards {
	var out []poker.HoleCards
	for s1 := range uint8(4) {
		for s2 := range uint8(4) {
			switch {
			case p.High == p.Low && s2 <= s1:
				continue
			case p.High != p.Low && p.Suits == SuitedOnly && s1 != s2:
				continue
			case p.High != p.Low && p.Suits == OffsuitOnly && s1 == s2:
				continue
			}
			h, _ := poker.NewHoleCards(poker.NewCard(p.High, s1), poker.NewCard(p.Low, s2))
			out = append(out, h)
		}
	}
	return out
}
