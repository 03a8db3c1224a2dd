package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apd "github.com/cockroachdb/apd/v3"
)

// Type is the type shared by every value of a column.
type Type int

const (
	Text Type = iota
	Int
	Decimal
	Bool
	Date
)

var typeNames = [...]string{
	Text:    "text",
	Int:     "int",
	Decimal: "decimal",
	Bool:    "bool",
	Date:    "date",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// ParseType parses a type name as printed by Type.String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(s, name) {
			return Type(i), nil
		}
	}
	return Text, fmt.Errorf("unknown column type %q", s)
}

// dateLayouts are tried in order when reading Date values.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (t Type) holds(v any) bool {
	if v == nil {
		return true
	}
	switch t {
	case Text:
		_, ok := v.(string)
		return ok
	case Int:
		_, ok := v.(int64)
		return ok
	case Decimal:
		_, ok := v.(*apd.Decimal)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case Date:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}

// parse converts text to a value of type t. Only conversions that format
// back to the exact same text are accepted, so leading zeros, exponents and
// other spellings that a conversion would rewrite stay text.
func (t Type) parse(s string) (any, bool) {
	switch t {
	case Text:
		return s, true
	case Int:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || strconv.FormatInt(i, 10) != s {
			return nil, false
		}
		return i, true
	case Decimal:
		d, _, err := apd.NewFromString(s)
		if err != nil || d.Form != apd.Finite || d.Text('f') != s {
			return nil, false
		}
		return d, true
	case Bool:
		switch strings.ToLower(s) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	case Date:
		for _, layout := range dateLayouts {
			if tm, err := time.Parse(layout, s); err == nil {
				return tm, true
			}
		}
		return nil, false
	}
	return nil, false
}

// FormatValue renders a table value as text. Nil renders as "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case *apd.Decimal:
		return x.Text('f')
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}
