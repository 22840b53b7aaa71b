package sql

import "time"

// DataType represents the logical type of a value in a column.
type DataType int

const (
	TypeNumber DataType = iota
	TypeString
	TypeDatetime
)

// String returns the type name used by schema introspection.
func (t DataType) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeDatetime:
		return "Datetime"
	default:
		return "Unknown"
	}
}

// Value represents a single decoded cell (one column in one row).
// Only the field matching Type should be read, and none of them when Null is
// set; other fields remain at their zero values.
type Value struct {
	Type DataType
	Null bool

	Num  float64   // for TypeNumber
	Str  string    // for TypeString
	Time time.Time // for TypeDatetime
}

// Row is the hydrated form of a record: column name -> decoded value.
// On input a missing key means "absent"; both absent and Null encode to null.
type Row map[string]Value

// Column describes metadata for a single column in a table.
// AutoIncrease is only meaningful for TypeNumber.
type Column struct {
	Name         string
	Type         DataType
	AutoIncrease bool
}

// NumberColumn declares a Number column, optionally auto-increasing.
func NumberColumn(name string, autoIncrease bool) Column {
	return Column{Name: name, Type: TypeNumber, AutoIncrease: autoIncrease}
}

// StringColumn declares a String column.
func StringColumn(name string) Column {
	return Column{Name: name, Type: TypeString}
}

// DatetimeColumn declares a Datetime column.
func DatetimeColumn(name string) Column {
	return Column{Name: name, Type: TypeDatetime}
}
