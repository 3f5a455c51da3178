package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindDate
	KindOpaque // nested or otherwise unrenderable data, compared by its text
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindOpaque:
		return "opaque"
	default:
		return "null"
	}
}

// Value is a single cell value. The zero Value is null.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number wraps a float.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date wraps a timestamp.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Opaque wraps pre-rendered text for values with no natural ordering.
func Opaque(s string) Value { return Value{kind: KindOpaque, text: s} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric value when v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Time returns the timestamp when v is a date.
func (v Value) Time() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// String renders the value as text. This is the form the global filter
// matches against.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindOpaque:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		if isMidnightUTC(v.date) {
			return v.date.Format(time.DateOnly)
		}
		return v.date.Format(time.RFC3339)
	default:
		return ""
	}
}

func isMidnightUTC(t time.Time) bool {
	return t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// kindRank orders values of different kinds: null, number, date, text,
// opaque.
var kindRank = [...]int{
	KindNull:   0,
	KindNumber: 1,
	KindDate:   2,
	KindText:   3,
	KindOpaque: 4,
}

// Compare orders two values. Values of the same kind compare naturally;
// values of different kinds are ordered by kind, with null first.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(kindRank[a.kind], kindRank[b.kind])
	}

	switch a.kind {
	case KindNull:
		return 0
	case KindNumber:
		return cmp.Compare(a.num, b.num)
	case KindDate:
		return a.date.Compare(b.date)
	default:
		return strings.Compare(a.text, b.text)
	}
}

// FromAny converts a decoded JSON/YAML value into a Value.
func FromAny(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return Text(v)
	case bool:
		return Text(strconv.FormatBool(v))
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return Number(f)
		}
		return Text(v.String())
	case time.Time:
		return Date(v)
	case fmt.Stringer:
		return Opaque(v.String())
	}

	data, err := json.Marshal(x)
	if err != nil {
		return Opaque(fmt.Sprint(x))
	}
	return Opaque(string(data))
}
