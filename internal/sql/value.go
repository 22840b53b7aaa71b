package sql

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Null returns the null value. It compares equal to no other value except
// another null.
func Null() Value {
	return Value{Null: true}
}

// Number returns a Number value.
func Number(f float64) Value {
	return Value{Type: TypeNumber, Num: f}
}

// String returns a String value.
func String(s string) Value {
	return Value{Type: TypeString, Str: s}
}

// Datetime returns a Datetime value. Datetimes are stored with millisecond
// precision, so t is truncated accordingly.
func Datetime(t time.Time) Value {
	return Value{Type: TypeDatetime, Time: time.UnixMilli(t.UnixMilli()).UTC()}
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.Null
}

// Equal compares two values, considering their type. Datetimes compare by
// instant; null equals only null.
func (v Value) Equal(o Value) bool {
	if v.Null || o.Null {
		return v.Null && o.Null
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeNumber:
		return v.Num == o.Num
	case TypeString:
		return v.Str == o.Str
	case TypeDatetime:
		return v.Time.Equal(o.Time)
	default:
		return false
	}
}

// String renders v for display.
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	switch v.Type {
	case TypeNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case TypeString:
		return v.Str
	case TypeDatetime:
		return v.Time.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("<%v>", v.Type)
	}
}

// Interface returns v as a plain Go value (nil, float64, string or
// time.Time), convenient for JSON encoding.
func (v Value) Interface() any {
	if v.Null {
		return nil
	}
	switch v.Type {
	case TypeNumber:
		return v.Num
	case TypeString:
		return v.Str
	case TypeDatetime:
		return v.Time
	default:
		return nil
	}
}

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Compare orders two values ascending and returns -1, 0 or +1. Null sorts
// before everything; values of different types order by type. Strings are
// compared with strcmp, or byte-wise when strcmp is nil.
func Compare(a, b Value, strcmp func(x, y string) int) int {
	switch {
	case a.Null && b.Null:
		return 0
	case a.Null:
		return -1
	case b.Null:
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}

	switch a.Type {
	case TypeString:
		if strcmp == nil {
			return strings.Compare(a.Str, b.Str)
		}
		return strcmp(a.Str, b.Str)
	case TypeDatetime:
		return a.Time.Compare(b.Time)
	default:
		return cmp.Compare(a.Num, b.Num)
	}
}
