package lazy

// NodeID identifies a node in the arena.
type NodeID int32

const (
	InvalidNodeID NodeID = -1
)

// NodeKind describes the node category.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	KindColumn
	KindLiteral
	KindBinary
	KindUnary
	KindAgg
	KindFunction
	KindCast
	KindSort
	KindFilter
	KindSlice
	KindWindow
	KindTernary
	KindAlias
	KindWildcard
	KindExcept
	KindSortBy
	KindTake
	KindShift
	KindBetween
	KindIsIn
	KindWhenThen
	KindQuantile
	KindBinaryFunction
	KindTopK
)

// BinaryOp represents a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpMod
	// String/temporal binary operations, matching expr.BinaryOp's extended set.
	OpStrContains
	OpStrStartsWith
	OpStrEndsWith
	OpStrEncode
	OpStrDecode
	OpStrFormat
	OpStrToDateTimeFormat
)

// UnaryOp represents a unary operator.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpIsNull
	OpIsNotNull
	// String unary operations, matching expr.UnaryOp's extended set.
	OpStrLength
	OpStrToUpper
	OpStrToLower
	OpStrStrip
	OpStrToInteger
	OpStrToFloat
	OpStrToBoolean
	OpStrToDateTime
)

// AggOp represents an aggregation operator.
type AggOp int

const (
	AggSum AggOp = iota
	AggMean
	AggMin
	AggMax
	AggCount
	AggStd
	AggVar
	AggFirst
	AggLast
	AggMedian
	AggNUnique
	AggGroups
	AggQuantile
	AggList
	AggTopK
)

// TernaryOp represents a ternary operator.
type TernaryOp int

const (
	OpStrReplace TernaryOp = iota
)

// Node represents a single AST node in the arena.
type Node struct {
	Kind     NodeKind
	Payload  interface{}
	Children []NodeID
}

// Column payload.
type Column struct {
	NameID uint32
}

// Literal payload.
type Literal struct {
	Value interface{}
}

// Binary payload.
type Binary struct {
	Op BinaryOp
}

// Unary payload.
type Unary struct {
	Op UnaryOp
}

// Agg payload.
type Agg struct {
	Op AggOp
}

// Function payload.
type Function struct {
	NameID uint32
}

// Cast payload.
type Cast struct {
	TypeID uint32
}

// Sort payload.
type Sort struct {
	Descending bool
	NullsLast  bool
}

// Filter payload.
type Filter struct{}

// Slice payload.
type Slice struct {
	Offset int
	Length int
}

// Window payload. Children holds [function, partitionBy..., orderBy...];
// PartitionLen/OrderLen split Children back into the three groups since the
// arena does not tag children by role.
type Window struct {
	PartitionLen int
	OrderLen     int
}

// Ternary payload: Children are [expr, arg1, arg2].
type Ternary struct {
	Op TernaryOp
}

// Alias payload.
type Alias struct {
	NameID uint32
}

// Wildcard payload: matches every column in scope.
type Wildcard struct{}

// Except payload: matches every column except the interned, excluded names.
type Except struct {
	ExcludedIDs []uint32
}

// SortBy payload: Children are [target, by...]; Descending parallels the by
// list position-for-position.
type SortBy struct {
	Descending []bool
}

// Take payload: Children are [input, index].
type Take struct{}

// Shift payload: shifts input by Periods rows.
type Shift struct {
	Periods int
}

// Between payload: Children are [expr, lower, upper].
type Between struct{}

// IsIn payload: Children are [expr, values...].
type IsIn struct{}

// WhenThen payload: Children are [when, then] or [when, then, otherwise].
type WhenThen struct{}

// Quantile payload: Children are [expr].
type Quantile struct {
	Value float64
}

// BinaryFunction payload: Children are [left, right].
type BinaryFunction struct {
	NameID uint32
}

// TopK payload: Children are [expr].
type TopK struct {
	K       int
	Largest bool
}
