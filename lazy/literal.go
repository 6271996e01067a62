package lazy

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/series"
)

// LiteralValue is the closed set of constant values a plan or expression
// tree may embed directly, mirroring the scalar payload of a literal
// expression node rather than anything read from a column.
type LiteralValue interface {
	fmt.Stringer
	// GetDataType returns the schema type this literal resolves to.
	GetDataType() datatypes.DataType
}

type BooleanLiteral bool

func (l BooleanLiteral) String() string                { return fmt.Sprintf("%v", bool(l)) }
func (l BooleanLiteral) GetDataType() datatypes.DataType { return datatypes.Boolean{} }

type Int8Literal int8

func (l Int8Literal) String() string                { return fmt.Sprintf("%d", int8(l)) }
func (l Int8Literal) GetDataType() datatypes.DataType { return datatypes.Int8{} }

type Int16Literal int16

func (l Int16Literal) String() string                { return fmt.Sprintf("%d", int16(l)) }
func (l Int16Literal) GetDataType() datatypes.DataType { return datatypes.Int16{} }

type Int32Literal int32

func (l Int32Literal) String() string                { return fmt.Sprintf("%d", int32(l)) }
func (l Int32Literal) GetDataType() datatypes.DataType { return datatypes.Int32{} }

type Int64Literal int64

func (l Int64Literal) String() string                { return fmt.Sprintf("%d", int64(l)) }
func (l Int64Literal) GetDataType() datatypes.DataType { return datatypes.Int64{} }

type UInt8Literal uint8

func (l UInt8Literal) String() string                { return fmt.Sprintf("%d", uint8(l)) }
func (l UInt8Literal) GetDataType() datatypes.DataType { return datatypes.UInt8{} }

type UInt16Literal uint16

func (l UInt16Literal) String() string                { return fmt.Sprintf("%d", uint16(l)) }
func (l UInt16Literal) GetDataType() datatypes.DataType { return datatypes.UInt16{} }

type UInt32Literal uint32

func (l UInt32Literal) String() string                { return fmt.Sprintf("%d", uint32(l)) }
func (l UInt32Literal) GetDataType() datatypes.DataType { return datatypes.UInt32{} }

type UInt64Literal uint64

func (l UInt64Literal) String() string                { return fmt.Sprintf("%d", uint64(l)) }
func (l UInt64Literal) GetDataType() datatypes.DataType { return datatypes.UInt64{} }

type Float32Literal float32

func (l Float32Literal) String() string                { return fmt.Sprintf("%v", float32(l)) }
func (l Float32Literal) GetDataType() datatypes.DataType { return datatypes.Float32{} }

type Float64Literal float64

func (l Float64Literal) String() string                { return fmt.Sprintf("%v", float64(l)) }
func (l Float64Literal) GetDataType() datatypes.DataType { return datatypes.Float64{} }

type Utf8Literal string

func (l Utf8Literal) String() string                { return fmt.Sprintf("%q", string(l)) }
func (l Utf8Literal) GetDataType() datatypes.DataType { return datatypes.String{} }

// RangeLiteral is an integer range low..high, used for things like
// int_range(0, n) that should be treated as a constant column of known
// length rather than materialized up front.
type RangeLiteral struct {
	Low, High int64
	DataType  datatypes.DataType
}

func (l RangeLiteral) String() string {
	return fmt.Sprintf("range(%d, %d)", l.Low, l.High)
}
func (l RangeLiteral) GetDataType() datatypes.DataType { return l.DataType }

// DateTimeLiteral is a naive (timezone-less) instant.
type DateTimeLiteral time.Time

func (l DateTimeLiteral) String() string {
	return time.Time(l).Format(time.RFC3339)
}
func (l DateTimeLiteral) GetDataType() datatypes.DataType {
	return datatypes.Datetime{Unit: datatypes.Microseconds}
}

// ParseDateTimeLiteral builds a DateTimeLiteral from a free-form date/time
// string, the literal-construction path for builder calls that accept a
// date as text (e.g. a filter bound typed by a user rather than computed).
func ParseDateTimeLiteral(value string) (DateTimeLiteral, error) {
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return DateTimeLiteral{}, fmt.Errorf("parse datetime literal %q: %w", value, err)
	}
	return DateTimeLiteral(t), nil
}

// SeriesLiteral embeds a fully materialized column as an opaque constant,
// used when a literal is itself array-shaped (e.g. is_in([...])).
type SeriesLiteral struct {
	Series series.Series
}

func (l SeriesLiteral) String() string {
	return fmt.Sprintf("series(%s)[%d]", l.Series.Name(), l.Series.Len())
}
func (l SeriesLiteral) GetDataType() datatypes.DataType { return l.Series.DataType() }

// NullLiteral is the untyped null literal.
type NullLiteral struct{}

func (NullLiteral) String() string                { return "null" }
func (NullLiteral) GetDataType() datatypes.DataType { return datatypes.Null{} }
