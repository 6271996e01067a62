package expr

import (
	"fmt"
	"strings"

	"github.com/tnn1t1s/golars/datatypes"
)

// Context distinguishes how an expression reports its output field: Default
// evaluates an expression against the full input schema row-wise, while
// Aggregation evaluates it per group, where aggregate expressions collapse
// to a single scalar per group instead of erroring.
type Context int

const (
	Default Context = iota
	Aggregation
)

// WildcardExpr selects every column in scope. It is rewritten away before a
// plan is built; ToField is never called on a surviving WildcardExpr.
type WildcardExpr struct{}

func Wildcard() *WildcardExpr { return &WildcardExpr{} }

func (e *WildcardExpr) String() string                  { return "*" }
func (e *WildcardExpr) DataType() datatypes.DataType     { return datatypes.Unknown{} }
func (e *WildcardExpr) Alias(name string) Expr           { return &AliasExpr{expr: e, alias: name} }
func (e *WildcardExpr) IsColumn() bool                   { return true }
func (e *WildcardExpr) Name() string                     { return "*" }

// Mul creates a multiplication expression applied to every column in scope;
// ReplaceWildcardWithColumn fans this out to one multiplication per field.
func (e *WildcardExpr) Mul(other interface{}) *BinaryExpr {
	return &BinaryExpr{left: e, right: toExpr(other), op: OpMultiply}
}

// Gt creates a greater-than comparison applied to every column in scope.
func (e *WildcardExpr) Gt(other interface{}) *BinaryExpr {
	return &BinaryExpr{left: e, right: toExpr(other), op: OpGreater}
}

// Count creates a count aggregation over every column in scope;
// RewriteProjections collapses a bare count(*) to a single "count" column.
func (e *WildcardExpr) Count() *AggExpr {
	return &AggExpr{expr: e, aggOp: AggCount}
}

// ExceptExpr selects every column except the named exclusions. It is only
// ever found directly beneath a projection and is rewritten away before a
// plan schema is derived.
type ExceptExpr struct {
	excluded []string
}

func Except(names ...string) *ExceptExpr {
	return &ExceptExpr{excluded: names}
}

func (e *ExceptExpr) Excluded() []string { return e.excluded }

func (e *ExceptExpr) String() string {
	return fmt.Sprintf("*.exclude(%s)", strings.Join(e.excluded, ", "))
}
func (e *ExceptExpr) DataType() datatypes.DataType { return datatypes.Unknown{} }
func (e *ExceptExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *ExceptExpr) IsColumn() bool               { return true }
func (e *ExceptExpr) Name() string                 { return "*" }

// WindowExpr applies an aggregation-shaped function over a partitioned,
// optionally ordered window instead of collapsing rows.
type WindowExpr struct {
	function   Expr
	partitionBy []Expr
	orderBy     []Expr
}

// Over wraps function as a window expression partitioned by partitionBy.
func Over(function Expr, partitionBy ...Expr) *WindowExpr {
	return &WindowExpr{function: function, partitionBy: partitionBy}
}

func (e *WindowExpr) OrderBy(orderBy ...Expr) *WindowExpr {
	return &WindowExpr{function: e.function, partitionBy: e.partitionBy, orderBy: orderBy}
}

func (e *WindowExpr) Function() Expr     { return e.function }
func (e *WindowExpr) PartitionBy() []Expr { return e.partitionBy }
func (e *WindowExpr) OrderByExprs() []Expr { return e.orderBy }

func (e *WindowExpr) String() string {
	parts := make([]string, len(e.partitionBy))
	for i, p := range e.partitionBy {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s.over(%s)", e.function.String(), strings.Join(parts, ", "))
}
func (e *WindowExpr) DataType() datatypes.DataType { return e.function.DataType() }
func (e *WindowExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *WindowExpr) IsColumn() bool               { return false }
func (e *WindowExpr) Name() string                 { return OutputName(e.function) }

// SortExpr marks its input for sort-key purposes at the expression level
// (distinct from LogicalPlan's row-level Sort operator).
type SortExpr struct {
	expr       Expr
	descending bool
	nullsLast  bool
}

func SortExprOf(target Expr, descending, nullsLast bool) *SortExpr {
	return &SortExpr{expr: target, descending: descending, nullsLast: nullsLast}
}

func (e *SortExpr) Expr() Expr         { return e.expr }
func (e *SortExpr) Descending() bool   { return e.descending }
func (e *SortExpr) NullsLast() bool    { return e.nullsLast }

func (e *SortExpr) String() string {
	return fmt.Sprintf("%s.sort(descending=%v)", e.expr.String(), e.descending)
}
func (e *SortExpr) DataType() datatypes.DataType { return e.expr.DataType() }
func (e *SortExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *SortExpr) IsColumn() bool               { return e.expr.IsColumn() }
func (e *SortExpr) Name() string                 { return e.expr.Name() }

// SortByExpr sorts expr by the values of one or more other expressions.
type SortByExpr struct {
	expr       Expr
	by         []Expr
	descending []bool
}

func SortBy(target Expr, by []Expr, descending []bool) *SortByExpr {
	return &SortByExpr{expr: target, by: by, descending: descending}
}

func (e *SortByExpr) Expr() Expr          { return e.expr }
func (e *SortByExpr) By() []Expr          { return e.by }
func (e *SortByExpr) Descending() []bool  { return e.descending }

func (e *SortByExpr) String() string {
	parts := make([]string, len(e.by))
	for i, b := range e.by {
		parts[i] = b.String()
	}
	return fmt.Sprintf("%s.sort_by(%s)", e.expr.String(), strings.Join(parts, ", "))
}
func (e *SortByExpr) DataType() datatypes.DataType { return e.expr.DataType() }
func (e *SortByExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *SortByExpr) IsColumn() bool               { return false }
func (e *SortByExpr) Name() string                 { return e.expr.Name() }

// SliceExpr restricts an expression's evaluation to an offset/length window.
type SliceExpr struct {
	expr   Expr
	offset int
	length int
}

func Slice(target Expr, offset, length int) *SliceExpr {
	return &SliceExpr{expr: target, offset: offset, length: length}
}

func (e *SliceExpr) Expr() Expr   { return e.expr }
func (e *SliceExpr) Offset() int  { return e.offset }
func (e *SliceExpr) Length() int  { return e.length }

func (e *SliceExpr) String() string {
	return fmt.Sprintf("%s.slice(%d, %d)", e.expr.String(), e.offset, e.length)
}
func (e *SliceExpr) DataType() datatypes.DataType { return e.expr.DataType() }
func (e *SliceExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *SliceExpr) IsColumn() bool               { return false }
func (e *SliceExpr) Name() string                 { return e.expr.Name() }

// FunctionExpr is an n-ary named function over zero or more input
// expressions, used for functions that don't fit the binary/unary shape.
type FunctionExpr struct {
	name   string
	inputs []Expr
	output datatypes.DataType
}

func Function(name string, output datatypes.DataType, inputs ...Expr) *FunctionExpr {
	return &FunctionExpr{name: name, inputs: inputs, output: output}
}

func (e *FunctionExpr) FuncName() string { return e.name }
func (e *FunctionExpr) Inputs() []Expr   { return e.inputs }

func (e *FunctionExpr) String() string {
	parts := make([]string, len(e.inputs))
	for i, in := range e.inputs {
		parts[i] = in.String()
	}
	return fmt.Sprintf("%s(%s)", e.name, strings.Join(parts, ", "))
}
func (e *FunctionExpr) DataType() datatypes.DataType { return e.output }
func (e *FunctionExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *FunctionExpr) IsColumn() bool               { return false }
func (e *FunctionExpr) Name() string {
	if len(e.inputs) > 0 {
		return e.inputs[0].Name()
	}
	return ""
}

// BinaryFunctionExpr is a named function over exactly two inputs, kept
// distinct from FunctionExpr to mirror functions whose two arguments play
// clearly asymmetric roles (e.g. str.replace(pattern, value)).
type BinaryFunctionExpr struct {
	name   string
	left   Expr
	right  Expr
	output datatypes.DataType
}

func BinaryFunction(name string, left, right Expr, output datatypes.DataType) *BinaryFunctionExpr {
	return &BinaryFunctionExpr{name: name, left: left, right: right, output: output}
}

func (e *BinaryFunctionExpr) FuncName() string { return e.name }
func (e *BinaryFunctionExpr) Left() Expr       { return e.left }
func (e *BinaryFunctionExpr) Right() Expr      { return e.right }

func (e *BinaryFunctionExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.name, e.left.String(), e.right.String())
}
func (e *BinaryFunctionExpr) DataType() datatypes.DataType { return e.output }
func (e *BinaryFunctionExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *BinaryFunctionExpr) IsColumn() bool               { return false }
func (e *BinaryFunctionExpr) Name() string                 { return e.left.Name() }

// TakeExpr gathers values of expr at the row positions given by idx.
type TakeExpr struct {
	expr Expr
	idx  Expr
}

func Take(target, idx Expr) *TakeExpr {
	return &TakeExpr{expr: target, idx: idx}
}

func (e *TakeExpr) Expr() Expr { return e.expr }
func (e *TakeExpr) Idx() Expr  { return e.idx }

func (e *TakeExpr) String() string {
	return fmt.Sprintf("%s.take(%s)", e.expr.String(), e.idx.String())
}
func (e *TakeExpr) DataType() datatypes.DataType { return e.expr.DataType() }
func (e *TakeExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *TakeExpr) IsColumn() bool               { return false }
func (e *TakeExpr) Name() string                 { return e.expr.Name() }

// ShiftExpr shifts expr's values by periods rows, introducing nulls at the
// vacated rows.
type ShiftExpr struct {
	expr    Expr
	periods int
}

func Shift(target Expr, periods int) *ShiftExpr {
	return &ShiftExpr{expr: target, periods: periods}
}

func (e *ShiftExpr) Expr() Expr    { return e.expr }
func (e *ShiftExpr) Periods() int  { return e.periods }

func (e *ShiftExpr) String() string {
	return fmt.Sprintf("%s.shift(%d)", e.expr.String(), e.periods)
}
func (e *ShiftExpr) DataType() datatypes.DataType { return e.expr.DataType() }
func (e *ShiftExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *ShiftExpr) IsColumn() bool               { return false }
func (e *ShiftExpr) Name() string                 { return e.expr.Name() }

// QuantileExpr computes a single quantile of expr's values.
type QuantileExpr struct {
	expr     Expr
	quantile float64
}

func Quantile(target Expr, q float64) *QuantileExpr {
	return &QuantileExpr{expr: target, quantile: q}
}

func (e *QuantileExpr) Expr() Expr        { return e.expr }
func (e *QuantileExpr) QuantileValue() float64 { return e.quantile }

func (e *QuantileExpr) String() string {
	return fmt.Sprintf("%s.quantile(%v)", e.expr.String(), e.quantile)
}
func (e *QuantileExpr) DataType() datatypes.DataType { return datatypes.Float64{} }
func (e *QuantileExpr) Alias(name string) Expr       { return &AliasExpr{expr: e, alias: name} }
func (e *QuantileExpr) IsColumn() bool               { return false }
func (e *QuantileExpr) Name() string                 { return "" }

const (
	AggNUnique AggOp = iota + 100
	AggGroups
	AggList
)

// ToField resolves the schema Field an expression produces when evaluated
// against schema under ctx. Aggregation context collapses aggregate
// expressions to a single scalar field instead of erroring.
func ToField(e Expr, schema *datatypes.Schema, ctx Context) (datatypes.Field, error) {
	switch ex := e.(type) {
	case *WildcardExpr, *ExceptExpr:
		return datatypes.Field{}, fmt.Errorf("wildcard/except expressions must be rewritten before schema resolution")
	case *ColumnExpr:
		field, ok := schema.FieldWithName(ex.Name())
		if !ok {
			return datatypes.Field{}, fmt.Errorf("column %q not found in schema", ex.Name())
		}
		return field, nil
	case *LiteralExpr:
		return datatypes.Field{Name: OutputName(ex), DataType: ex.DataType()}, nil
	case *AliasExpr:
		inner, err := ToField(ex.expr, schema, ctx)
		if err != nil {
			return datatypes.Field{}, err
		}
		inner.Name = ex.alias
		return inner, nil
	case *AggExpr:
		if ctx != Aggregation {
			return datatypes.Field{}, fmt.Errorf("aggregation expression %s used outside an aggregation context", ex.String())
		}
		return datatypes.Field{Name: OutputName(ex), DataType: ex.DataType()}, nil
	default:
		inner, err := fieldFromInputs(e, schema, ctx)
		if err != nil {
			return datatypes.Field{}, err
		}
		return datatypes.Field{Name: OutputName(e), DataType: inner}, nil
	}
}

func fieldFromInputs(e Expr, schema *datatypes.Schema, ctx Context) (datatypes.DataType, error) {
	switch ex := e.(type) {
	case *BinaryExpr:
		if _, err := ToField(ex.left, schema, ctx); err != nil {
			return nil, err
		}
		if _, err := ToField(ex.right, schema, ctx); err != nil {
			return nil, err
		}
		return ex.DataType(), nil
	case *UnaryExpr:
		if _, err := ToField(ex.expr, schema, ctx); err != nil {
			return nil, err
		}
		return ex.DataType(), nil
	case *CastExpr:
		return ex.DataType(), nil
	case *BetweenExpr, *IsInExpr:
		return datatypes.Boolean{}, nil
	case *WindowExpr:
		return ex.DataType(), nil
	case *SortExpr:
		return ex.DataType(), nil
	case *SortByExpr:
		return ex.DataType(), nil
	case *SliceExpr:
		return ex.DataType(), nil
	case *FunctionExpr:
		return ex.DataType(), nil
	case *BinaryFunctionExpr:
		return ex.DataType(), nil
	case *TakeExpr:
		return ex.DataType(), nil
	case *ShiftExpr:
		return ex.DataType(), nil
	case *QuantileExpr:
		return ex.DataType(), nil
	case *WhenThenExpr:
		return ex.DataType(), nil
	case *TernaryExpr:
		return ex.DataType(), nil
	default:
		return e.DataType(), nil
	}
}

// OutputName returns the name an expression contributes to its parent's
// schema: an explicit alias if present, otherwise the root column name; an
// aggregation appends its operation to that name (sum of "a" is "a_sum").
func OutputName(e Expr) string {
	switch ex := e.(type) {
	case *AliasExpr:
		return ex.alias
	case *ColumnExpr:
		return ex.name
	case *BinaryExpr:
		return OutputName(ex.left)
	case *UnaryExpr:
		return OutputName(ex.expr)
	case *AggExpr:
		return aggOutputName(ex.expr, ex.aggOp)
	case *CastExpr:
		return OutputName(ex.Expr())
	case *WindowExpr:
		return OutputName(ex.function)
	case *SortExpr:
		return OutputName(ex.expr)
	case *SortByExpr:
		return OutputName(ex.expr)
	case *SliceExpr:
		return OutputName(ex.expr)
	case *TakeExpr:
		return OutputName(ex.expr)
	case *ShiftExpr:
		return OutputName(ex.expr)
	case *FunctionExpr:
		if len(ex.inputs) > 0 {
			return OutputName(ex.inputs[0])
		}
		return ex.name
	case *BinaryFunctionExpr:
		return OutputName(ex.left)
	default:
		return e.Name()
	}
}

func aggOutputName(inner Expr, op AggOp) string {
	name := OutputName(inner)
	suffix := map[AggOp]string{
		AggSum: "sum", AggMean: "mean", AggMin: "min", AggMax: "max",
		AggCount: "count", AggStd: "std", AggVar: "var", AggFirst: "first",
		AggLast: "last", AggMedian: "median", AggNUnique: "n_unique",
		AggGroups: "agg_groups", AggList: "list",
	}[op]
	if suffix == "" {
		return name
	}
	return name + "_" + suffix
}

// ExprToRootColumnName returns the single root column name an expression
// resolves to, erroring if the expression references more than one column
// (e.g. a binary expression combining two distinct columns).
func ExprToRootColumnName(e Expr) (string, error) {
	names := ExprToRootColumnNames(e)
	if len(names) != 1 {
		return "", fmt.Errorf("expected a single root column, found %d", len(names))
	}
	return names[0], nil
}

// ExprToRootColumnNames collects every distinct column name an expression
// reads from.
func ExprToRootColumnNames(e Expr) []string {
	seen := make(map[string]struct{})
	var order []string
	collectRootColumns(e, seen, &order)
	return order
}

func collectRootColumns(e Expr, seen map[string]struct{}, order *[]string) {
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			*order = append(*order, name)
		}
	}
	switch ex := e.(type) {
	case *ColumnExpr:
		add(ex.name)
	case *AliasExpr:
		collectRootColumns(ex.expr, seen, order)
	case *BinaryExpr:
		collectRootColumns(ex.left, seen, order)
		collectRootColumns(ex.right, seen, order)
	case *UnaryExpr:
		collectRootColumns(ex.expr, seen, order)
	case *AggExpr:
		collectRootColumns(ex.expr, seen, order)
	case *CastExpr:
		collectRootColumns(ex.Expr(), seen, order)
	case *BetweenExpr:
		collectRootColumns(ex.Expr(), seen, order)
		collectRootColumns(ex.Lower(), seen, order)
		collectRootColumns(ex.Upper(), seen, order)
	case *IsInExpr:
		collectRootColumns(ex.Expr(), seen, order)
		for _, v := range ex.Values() {
			collectRootColumns(v, seen, order)
		}
	case *WindowExpr:
		collectRootColumns(ex.function, seen, order)
		for _, p := range ex.partitionBy {
			collectRootColumns(p, seen, order)
		}
		for _, o := range ex.orderBy {
			collectRootColumns(o, seen, order)
		}
	case *SortExpr:
		collectRootColumns(ex.expr, seen, order)
	case *SortByExpr:
		collectRootColumns(ex.expr, seen, order)
		for _, b := range ex.by {
			collectRootColumns(b, seen, order)
		}
	case *SliceExpr:
		collectRootColumns(ex.expr, seen, order)
	case *TakeExpr:
		collectRootColumns(ex.expr, seen, order)
		collectRootColumns(ex.idx, seen, order)
	case *ShiftExpr:
		collectRootColumns(ex.expr, seen, order)
	case *QuantileExpr:
		collectRootColumns(ex.expr, seen, order)
	case *FunctionExpr:
		for _, in := range ex.inputs {
			collectRootColumns(in, seen, order)
		}
	case *BinaryFunctionExpr:
		collectRootColumns(ex.left, seen, order)
		collectRootColumns(ex.right, seen, order)
	case *WhenThenExpr:
		collectRootColumns(ex.when, seen, order)
		collectRootColumns(ex.then, seen, order)
		if ex.otherwise != nil {
			collectRootColumns(ex.otherwise, seen, order)
		}
	case *TernaryExpr:
		collectRootColumns(ex.expr, seen, order)
		collectRootColumns(ex.arg1, seen, order)
		collectRootColumns(ex.arg2, seen, order)
	}
}

// RenameExprRootName returns a copy of e with its root column reference
// renamed from oldName to newName, used by join schema resolution to
// re-target an expression after a collision rename.
func RenameExprRootName(e Expr, oldName, newName string) Expr {
	switch ex := e.(type) {
	case *ColumnExpr:
		if ex.name == oldName {
			return &ColumnExpr{name: newName}
		}
		return ex
	case *AliasExpr:
		return &AliasExpr{expr: RenameExprRootName(ex.expr, oldName, newName), alias: ex.alias}
	case *BinaryExpr:
		return &BinaryExpr{
			left:  RenameExprRootName(ex.left, oldName, newName),
			right: RenameExprRootName(ex.right, oldName, newName),
			op:    ex.op,
		}
	case *UnaryExpr:
		return &UnaryExpr{expr: RenameExprRootName(ex.expr, oldName, newName), op: ex.op}
	case *AggExpr:
		return &AggExpr{expr: RenameExprRootName(ex.expr, oldName, newName), aggOp: ex.aggOp}
	default:
		return e
	}
}

// HasExpr reports whether the expression tree rooted at e contains a
// sub-expression matching predicate.
func HasExpr(e Expr, predicate func(Expr) bool) bool {
	if predicate(e) {
		return true
	}
	switch ex := e.(type) {
	case *AliasExpr:
		return HasExpr(ex.expr, predicate)
	case *BinaryExpr:
		return HasExpr(ex.left, predicate) || HasExpr(ex.right, predicate)
	case *UnaryExpr:
		return HasExpr(ex.expr, predicate)
	case *AggExpr:
		return HasExpr(ex.expr, predicate)
	case *CastExpr:
		return HasExpr(ex.Expr(), predicate)
	case *BetweenExpr:
		return HasExpr(ex.Expr(), predicate) || HasExpr(ex.Lower(), predicate) || HasExpr(ex.Upper(), predicate)
	case *IsInExpr:
		if HasExpr(ex.Expr(), predicate) {
			return true
		}
		for _, v := range ex.Values() {
			if HasExpr(v, predicate) {
				return true
			}
		}
		return false
	case *WindowExpr:
		if HasExpr(ex.function, predicate) {
			return true
		}
		for _, p := range ex.partitionBy {
			if HasExpr(p, predicate) {
				return true
			}
		}
		for _, o := range ex.orderBy {
			if HasExpr(o, predicate) {
				return true
			}
		}
		return false
	case *SortExpr:
		return HasExpr(ex.expr, predicate)
	case *SortByExpr:
		if HasExpr(ex.expr, predicate) {
			return true
		}
		for _, b := range ex.by {
			if HasExpr(b, predicate) {
				return true
			}
		}
		return false
	case *SliceExpr:
		return HasExpr(ex.expr, predicate)
	case *TakeExpr:
		return HasExpr(ex.expr, predicate) || HasExpr(ex.idx, predicate)
	case *ShiftExpr:
		return HasExpr(ex.expr, predicate)
	case *QuantileExpr:
		return HasExpr(ex.expr, predicate)
	case *FunctionExpr:
		for _, in := range ex.inputs {
			if HasExpr(in, predicate) {
				return true
			}
		}
		return false
	case *BinaryFunctionExpr:
		return HasExpr(ex.left, predicate) || HasExpr(ex.right, predicate)
	case *WhenThenExpr:
		if HasExpr(ex.when, predicate) || HasExpr(ex.then, predicate) {
			return true
		}
		if ex.otherwise != nil {
			return HasExpr(ex.otherwise, predicate)
		}
		return false
	case *TernaryExpr:
		return HasExpr(ex.expr, predicate) || HasExpr(ex.arg1, predicate) || HasExpr(ex.arg2, predicate)
	default:
		return false
	}
}

// IsAggExpr reports whether e is (or wraps) an aggregation.
func IsAggExpr(e Expr) bool {
	return HasExpr(e, func(x Expr) bool {
		_, ok := x.(*AggExpr)
		return ok
	})
}

// CombinePredicatesExpr folds a list of boolean predicates into a single
// conjunction, matching how repeated .filter() calls accumulate.
func CombinePredicatesExpr(predicates ...Expr) Expr {
	if len(predicates) == 0 {
		return nil
	}
	combined := predicates[0]
	for _, p := range predicates[1:] {
		combined = &BinaryExpr{left: combined, right: p, op: OpAnd}
	}
	return combined
}
