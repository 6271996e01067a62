package expr

import (
	"fmt"

	"github.com/tnn1t1s/golars/datatypes"
)

// ReplaceWildcardWithColumn performs a deep rewrite of e against schema.
//
// If e is itself a bare Wildcard or Except, the result is one column
// expression per matching schema field (Except additionally drops its
// named columns). If e is an Alias, its inner expression is expanded and
// the alias is reapplied; the expansion must yield exactly one expression,
// so aliasing anything that fans out to several columns (a bare Wildcard,
// or `col("*") * lit(2)` over a multi-column schema) is an error, since
// every fanned-out copy would collide on the one alias name. Otherwise, if
// e contains a Wildcard or Except anywhere
// inside it, the *whole* expression is cloned once per matching field, with
// every Wildcard/Except substituted for that field's column — this is what
// lets `col("*") * lit(2)` fan out into one multiplication per column
// rather than erroring. An expression with no Wildcard/Except is returned
// unchanged.
//
// insideFilter only affects how the caller is expected to recombine the
// result: a filter predicate's fan-out is ANDed back together by
// lazy.LogicalPlanBuilder.Filter via CombinePredicatesExpr, so no special
// error path is needed here for that case.
func ReplaceWildcardWithColumn(e Expr, schema *datatypes.Schema, insideFilter bool) ([]Expr, error) {
	switch ex := e.(type) {
	case *WildcardExpr:
		return columnsFor(schema, nil), nil
	case *ExceptExpr:
		excluded := make(map[string]struct{}, len(ex.excluded))
		for _, name := range ex.excluded {
			excluded[name] = struct{}{}
		}
		return columnsFor(schema, excluded), nil
	case *AliasExpr:
		inner, err := ReplaceWildcardWithColumn(ex.expr, schema, insideFilter)
		if err != nil {
			return nil, err
		}
		if len(inner) != 1 {
			return nil, fmt.Errorf("cannot alias a multi-column wildcard expansion")
		}
		return []Expr{&AliasExpr{expr: inner[0], alias: ex.alias}}, nil
	default:
		if !HasExpr(e, isWildcardOrExcept) {
			return []Expr{e}, nil
		}
		excluded := collectExceptNames(e)
		fields := schema.Fields
		out := make([]Expr, 0, len(fields))
		for _, field := range fields {
			if _, skip := excluded[field.Name]; skip {
				continue
			}
			out = append(out, substituteWildcardWithColumn(e, field.Name))
		}
		return out, nil
	}
}

func isWildcardOrExcept(e Expr) bool {
	switch e.(type) {
	case *WildcardExpr, *ExceptExpr:
		return true
	default:
		return false
	}
}

// collectExceptNames walks e for every Except node and unions their
// excluded column names, so a fan-out loop can skip those fields.
func collectExceptNames(e Expr) map[string]struct{} {
	names := make(map[string]struct{})
	var walk func(Expr)
	walk = func(cur Expr) {
		switch ex := cur.(type) {
		case *ExceptExpr:
			for _, name := range ex.excluded {
				names[name] = struct{}{}
			}
		case *AliasExpr:
			walk(ex.expr)
		case *BinaryExpr:
			walk(ex.left)
			walk(ex.right)
		case *UnaryExpr:
			walk(ex.expr)
		case *AggExpr:
			walk(ex.expr)
		case *CastExpr:
			walk(ex.Expr())
		case *BetweenExpr:
			walk(ex.Expr())
			walk(ex.Lower())
			walk(ex.Upper())
		case *IsInExpr:
			walk(ex.Expr())
			for _, v := range ex.Values() {
				walk(v)
			}
		case *WindowExpr:
			walk(ex.function)
		case *SortExpr:
			walk(ex.expr)
		case *SortByExpr:
			walk(ex.expr)
		case *SliceExpr:
			walk(ex.expr)
		case *TakeExpr:
			walk(ex.expr)
			walk(ex.idx)
		case *ShiftExpr:
			walk(ex.expr)
		case *QuantileExpr:
			walk(ex.expr)
		case *WhenThenExpr:
			walk(ex.when)
			walk(ex.then)
			if ex.otherwise != nil {
				walk(ex.otherwise)
			}
		case *TernaryExpr:
			walk(ex.expr)
			walk(ex.arg1)
			walk(ex.arg2)
		case *FunctionExpr:
			for _, in := range ex.inputs {
				walk(in)
			}
		case *BinaryFunctionExpr:
			walk(ex.left)
			walk(ex.right)
		}
	}
	walk(e)
	return names
}

// substituteWildcardWithColumn deep-copies e, replacing every Wildcard or
// Except node with Column(name). Called once per matching schema field by
// ReplaceWildcardWithColumn's fan-out path above, so unlike that function it
// returns a single Expr rather than a slice. A Take's index operand is kept
// as is.
func substituteWildcardWithColumn(e Expr, name string) Expr {
	switch ex := e.(type) {
	case *WildcardExpr, *ExceptExpr:
		return Col(name)
	case *AliasExpr:
		return &AliasExpr{expr: substituteWildcardWithColumn(ex.expr, name), alias: ex.alias}
	case *BinaryExpr:
		return &BinaryExpr{
			left:  substituteWildcardWithColumn(ex.left, name),
			right: substituteWildcardWithColumn(ex.right, name),
			op:    ex.op,
		}
	case *UnaryExpr:
		return &UnaryExpr{expr: substituteWildcardWithColumn(ex.expr, name), op: ex.op}
	case *AggExpr:
		return &AggExpr{expr: substituteWildcardWithColumn(ex.expr, name), aggOp: ex.aggOp}
	case *CastExpr:
		return &CastExpr{expr: substituteWildcardWithColumn(ex.Expr(), name), dataType: ex.TargetType()}
	case *BetweenExpr:
		return &BetweenExpr{
			expr:  substituteWildcardWithColumn(ex.Expr(), name),
			lower: substituteWildcardWithColumn(ex.Lower(), name),
			upper: substituteWildcardWithColumn(ex.Upper(), name),
		}
	case *IsInExpr:
		values := make([]Expr, len(ex.Values()))
		for i, v := range ex.Values() {
			values[i] = substituteWildcardWithColumn(v, name)
		}
		return &IsInExpr{expr: substituteWildcardWithColumn(ex.Expr(), name), values: values}
	case *WindowExpr:
		return &WindowExpr{
			function:    substituteWildcardWithColumn(ex.function, name),
			partitionBy: ex.partitionBy,
			orderBy:     ex.orderBy,
		}
	case *SortExpr:
		return &SortExpr{expr: substituteWildcardWithColumn(ex.expr, name), descending: ex.descending, nullsLast: ex.nullsLast}
	case *SortByExpr:
		return &SortByExpr{expr: substituteWildcardWithColumn(ex.expr, name), by: ex.by, descending: ex.descending}
	case *SliceExpr:
		return &SliceExpr{expr: substituteWildcardWithColumn(ex.expr, name), offset: ex.offset, length: ex.length}
	case *TakeExpr:
		return &TakeExpr{
			expr: substituteWildcardWithColumn(ex.expr, name),
			idx:  ex.idx,
		}
	case *ShiftExpr:
		return &ShiftExpr{expr: substituteWildcardWithColumn(ex.expr, name), periods: ex.periods}
	case *QuantileExpr:
		return &QuantileExpr{expr: substituteWildcardWithColumn(ex.expr, name), quantile: ex.quantile}
	case *WhenThenExpr:
		var otherwise Expr
		if ex.otherwise != nil {
			otherwise = substituteWildcardWithColumn(ex.otherwise, name)
		}
		return &WhenThenExpr{
			when:      substituteWildcardWithColumn(ex.when, name),
			then:      substituteWildcardWithColumn(ex.then, name),
			otherwise: otherwise,
		}
	case *TernaryExpr:
		return &TernaryExpr{
			expr: substituteWildcardWithColumn(ex.expr, name),
			arg1: substituteWildcardWithColumn(ex.arg1, name),
			arg2: substituteWildcardWithColumn(ex.arg2, name),
			op:   ex.op,
		}
	case *FunctionExpr:
		inputs := make([]Expr, len(ex.inputs))
		for i, in := range ex.inputs {
			inputs[i] = substituteWildcardWithColumn(in, name)
		}
		return &FunctionExpr{name: ex.name, inputs: inputs, output: ex.output}
	case *BinaryFunctionExpr:
		return &BinaryFunctionExpr{
			name:   ex.name,
			left:   substituteWildcardWithColumn(ex.left, name),
			right:  substituteWildcardWithColumn(ex.right, name),
			output: ex.output,
		}
	default:
		return e
	}
}

func columnsFor(schema *datatypes.Schema, excluded map[string]struct{}) []Expr {
	cols := make([]Expr, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		if _, skip := excluded[field.Name]; skip {
			continue
		}
		cols = append(cols, Col(field.Name))
	}
	return cols
}

// RewriteProjections expands a projection expression list against schema:
// every Wildcard/Except fans out into one expression per matching field,
// and any count("*") — whether the whole list or a single element — fans
// in instead, collapsing to one column expression aliased "count".
func RewriteProjections(exprs []Expr, schema *datatypes.Schema) ([]Expr, error) {
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if collapsed, ok := collapseCountWildcard(e, schema); ok {
			out = append(out, collapsed)
			continue
		}
		expanded, err := ReplaceWildcardWithColumn(e, schema, false)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// collapseCountWildcard recognizes count("*") (optionally aliased) anywhere
// it appears as a projection list element and rewrites it to a single
// count of the schema's first field, aliased "count" unless the caller
// already supplied an alias.
func collapseCountWildcard(e Expr, schema *datatypes.Schema) (Expr, bool) {
	inner, alias := unwrapAlias(e)
	agg, ok := inner.(*AggExpr)
	if !ok || agg.aggOp != AggCount {
		return nil, false
	}
	if _, isWildcard := agg.expr.(*WildcardExpr); !isWildcard {
		return nil, false
	}
	collapsed := &AggExpr{expr: Col(firstFieldOrStar(schema)), aggOp: AggCount}
	if alias == "" {
		alias = "count"
	}
	return collapsed.Alias(alias), true
}

func unwrapAlias(e Expr) (Expr, string) {
	return UnwrapAlias(e)
}

// UnwrapAlias strips a single Alias wrapper off e, returning the aliased name
// alongside (empty if e isn't an Alias). Exported so callers outside the
// package — e.g. lazy.deriveProjectionSchema picking an aggregation context
// for a bare count(*) collapse — can make the same distinction.
func UnwrapAlias(e Expr) (Expr, string) {
	if a, ok := e.(*AliasExpr); ok {
		return a.expr, a.alias
	}
	return e, ""
}

func firstFieldOrStar(schema *datatypes.Schema) string {
	if len(schema.Fields) > 0 {
		return schema.Fields[0].Name
	}
	return "*"
}
