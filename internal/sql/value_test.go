package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers", Number(1), Number(1), true},
		{"zero vs null", Number(0), Null(), false},
		{"empty vs null", String(""), Null(), false},
		{"null vs null", Null(), Null(), true},
		{"zero vs empty", Number(0), String(""), false},
		{"strings", String("a"), String("b"), false},
		{"instant across zones", Datetime(ts), Datetime(ts.In(time.FixedZone("X", 3600))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestDatetimeTruncatesToMillis(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 1_500_000, time.UTC)
	v := Datetime(ts)
	assert.Equal(t, 1_000_000, v.Time.Nanosecond())
	assert.Equal(t, time.UTC, v.Time.Location())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(Null(), Number(-5), nil))
	assert.Equal(t, 1, Compare(String(""), Null(), nil))
	assert.Equal(t, 0, Compare(Null(), Null(), nil))
	assert.Equal(t, -1, Compare(Number(2), Number(10), nil))
	assert.Equal(t, -1, Compare(String("B"), String("a"), nil))
	assert.Equal(t, 1, Compare(String("B"), String("a"), func(x, y string) int { return -1 * Compare(String(x), String(y), nil) }))

	early := Datetime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := Datetime(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, -1, Compare(early, late, nil))
	assert.Equal(t, -1, Compare(Number(100), String("0"), nil), "types order Number < String")
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "NULL", Null().String())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.Equal(t, "101", Number(101).String())
	assert.Equal(t, "x", String("x").String())
	assert.Equal(t, "2020-05-15T00:00:00Z", Datetime(time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC)).String())
}

func TestColumnConstructors(t *testing.T) {
	assert.Equal(t, Column{Name: "id", Type: TypeNumber, AutoIncrease: true}, NumberColumn("id", true))
	assert.Equal(t, Column{Name: "s", Type: TypeString}, StringColumn("s"))
	assert.Equal(t, Column{Name: "d", Type: TypeDatetime}, DatetimeColumn("d"))
	assert.Equal(t, "Datetime", TypeDatetime.String())
}
