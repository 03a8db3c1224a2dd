package xltable

import (
	"fmt"
	"regexp"

	"github.com/ukaji3/xltable-go/pkg/xltable/parser"
)

type predicateKind int

const (
	kindAny predicateKind = iota
	kindEqual
	kindOneOf
	kindMatch
	kindFunc
	kindCellFunc
)

func (k predicateKind) String() string {
	switch k {
	case kindAny:
		return "any"
	case kindEqual:
		return "equal"
	case kindOneOf:
		return "one-of"
	case kindMatch:
		return "match"
	case kindFunc:
		return "func"
	case kindCellFunc:
		return "cell-func"
	}
	return fmt.Sprintf("predicateKind(%d)", int(k))
}

// Predicate tests a cell or header value. The zero value matches anything.
//
// Anchor predicates accept Any, Equal, OneOf, Func and CellFunc. Column
// predicates accept Any, Equal, OneOf, Match and Func.
type Predicate struct {
	kind   predicateKind
	text   string
	set    map[string]struct{}
	re     *regexp.Regexp
	reErr  error
	fn     func(string) bool
	cellFn func(parser.Cell) bool
}

// Any matches every value.
func Any() Predicate {
	return Predicate{}
}

// Equal matches values equal to s.
func Equal(s string) Predicate {
	return Predicate{kind: kindEqual, text: s}
}

// OneOf matches values equal to any of ss.
func OneOf(ss ...string) Predicate {
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return Predicate{kind: kindOneOf, set: set}
}

// Match matches values whose beginning matches the regular expression expr.
// An invalid expression is reported when the predicate is used.
func Match(expr string) Predicate {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	return Predicate{kind: kindMatch, text: expr, re: re, reErr: err}
}

// Func matches values for which fn returns true.
func Func(fn func(string) bool) Predicate {
	return Predicate{kind: kindFunc, fn: fn}
}

// CellFunc matches cells for which fn returns true. It is only valid as an
// anchor predicate.
func CellFunc(fn func(parser.Cell) bool) Predicate {
	return Predicate{kind: kindCellFunc, cellFn: fn}
}

// IsAny reports whether p matches everything.
func (p Predicate) IsAny() bool {
	return p.kind == kindAny
}

// Test evaluates p against a value.
func (p Predicate) Test(v string) bool {
	switch p.kind {
	case kindAny:
		return true
	case kindEqual:
		return v == p.text
	case kindOneOf:
		_, ok := p.set[v]
		return ok
	case kindMatch:
		return p.re.MatchString(v)
	case kindFunc:
		return p.fn(v)
	case kindCellFunc:
		return p.cellFn(parser.Cell{Row: -1, Col: -1, Value: v})
	}
	return false
}

// TestCell evaluates p against a cell.
func (p Predicate) TestCell(c parser.Cell) bool {
	if p.kind == kindCellFunc {
		return p.cellFn(c)
	}
	return p.Test(c.Value)
}

func (p Predicate) String() string {
	switch p.kind {
	case kindEqual, kindMatch:
		return fmt.Sprintf("%s(%q)", p.kind, p.text)
	case kindOneOf:
		return fmt.Sprintf("%s(%d values)", p.kind, len(p.set))
	}
	return p.kind.String()
}

// validateAnchor checks that p can locate a table anchor.
func (p Predicate) validateAnchor() error {
	switch p.kind {
	case kindAny, kindEqual, kindOneOf:
		return nil
	case kindFunc:
		if p.fn == nil {
			return usageErrorf(ErrInvalidPredicate, "anchor: nil func")
		}
		return nil
	case kindCellFunc:
		if p.cellFn == nil {
			return usageErrorf(ErrInvalidPredicate, "anchor: nil cell func")
		}
		return nil
	}
	return usageErrorf(ErrInvalidPredicate, "anchor: %s predicates are not supported", p.kind)
}

// validateColumns checks that p can select header fields.
func (p Predicate) validateColumns() error {
	switch p.kind {
	case kindAny, kindEqual, kindOneOf:
		return nil
	case kindMatch:
		if p.reErr != nil {
			return usageErrorf(ErrInvalidPredicate, "columns: %v", p.reErr)
		}
		return nil
	case kindFunc:
		if p.fn == nil {
			return usageErrorf(ErrInvalidPredicate, "columns: nil func")
		}
		return nil
	}
	return usageErrorf(ErrInvalidPredicate, "columns: %s predicates are not supported", p.kind)
}

// anchorFunc returns the scan anchor test; nil anchors at the first cell.
func (p Predicate) anchorFunc() func(parser.Cell) bool {
	if p.kind == kindAny {
		return nil
	}
	return p.TestCell
}

// columnFunc returns the scan column test; nil keeps every column.
func (p Predicate) columnFunc() func(string) bool {
	if p.kind == kindAny {
		return nil
	}
	return p.Test
}
