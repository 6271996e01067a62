package lazy

import (
	"fmt"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/expr"
	"github.com/tnn1t1s/golars/frame"
)

// PlanKind discriminates the LogicalPlan sum type.
type PlanKind int

const (
	PlanSelection PlanKind = iota
	PlanCache
	PlanCsvScan
	PlanParquetScan
	PlanDataFrameScan
	PlanProjection
	PlanLocalProjection
	PlanAggregate
	PlanJoin
	PlanHStack
	PlanDistinct
	PlanSort
	PlanExplode
	PlanSlice
	PlanMelt
	PlanUdf
)

func (k PlanKind) String() string {
	switch k {
	case PlanSelection:
		return "Selection"
	case PlanCache:
		return "Cache"
	case PlanCsvScan:
		return "CsvScan"
	case PlanParquetScan:
		return "ParquetScan"
	case PlanDataFrameScan:
		return "DataFrameScan"
	case PlanProjection:
		return "Projection"
	case PlanLocalProjection:
		return "LocalProjection"
	case PlanAggregate:
		return "Aggregate"
	case PlanJoin:
		return "Join"
	case PlanHStack:
		return "HStack"
	case PlanDistinct:
		return "Distinct"
	case PlanSort:
		return "Sort"
	case PlanExplode:
		return "Explode"
	case PlanSlice:
		return "Slice"
	case PlanMelt:
		return "Melt"
	case PlanUdf:
		return "Udf"
	default:
		return "Unknown"
	}
}

// LogicalPlan is the closed sum of relational operators. Every non-leaf
// carries exactly one child except Join, which carries two.
type LogicalPlan interface {
	Kind() PlanKind
	Schema() (*datatypes.Schema, error)
	Children() []LogicalPlan
	WithChildren(children []LogicalPlan) (LogicalPlan, error)
}

// DefaultLogicalPlan returns a DataFrameScan over an empty dataframe with an
// empty schema, the zero value of the plan tree.
func DefaultLogicalPlan() LogicalPlan {
	df, _ := frame.NewDataFrame()
	return &DataFrameScan{
		DataFrame: df,
		SchemaVal: datatypes.NewSchema(),
	}
}

// ---- Selection ----

// Selection filters input's rows by Predicate.
type Selection struct {
	Input     LogicalPlan
	Predicate expr.Expr
}

func (p *Selection) Kind() PlanKind { return PlanSelection }

func (p *Selection) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Selection) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Selection) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Selection{Input: children[0], Predicate: p.Predicate}, nil
}

// ---- Cache ----

// Cache marks input for result reuse across the plan tree; it does not
// change the schema.
type Cache struct {
	Input LogicalPlan
}

func (p *Cache) Kind() PlanKind { return PlanCache }

func (p *Cache) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Cache) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Cache) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Cache{Input: children[0]}, nil
}

// ---- CsvScan ----

// CsvScan is a leaf reading rows from a CSV file.
type CsvScan struct {
	Path            string
	SchemaVal       *datatypes.Schema
	HasHeader       bool
	Delimiter       rune
	IgnoreErrors    bool
	SkipRows        int
	StopAfterNRows  int // -1 means unbounded
	WithColumns     []string
	ScanPredicate   expr.Expr
	Aggregate       []expr.Expr
	CacheScan       bool
	LowMemory       bool
}

func (p *CsvScan) Kind() PlanKind { return PlanCsvScan }

func (p *CsvScan) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *CsvScan) Children() []LogicalPlan { return nil }

func (p *CsvScan) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 0 {
		return nil, errInvalidChildren
	}
	return p, nil
}

// ---- ParquetScan ----

// ParquetScan is a leaf reading rows from a Parquet file.
type ParquetScan struct {
	Path           string
	SchemaVal      *datatypes.Schema
	WithColumns    []string
	ScanPredicate  expr.Expr
	Aggregate      []expr.Expr
	StopAfterNRows int
	CacheScan      bool
}

func (p *ParquetScan) Kind() PlanKind { return PlanParquetScan }

func (p *ParquetScan) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *ParquetScan) Children() []LogicalPlan { return nil }

func (p *ParquetScan) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 0 {
		return nil, errInvalidChildren
	}
	return p, nil
}

// ---- DataFrameScan ----

// DataFrameScan is a leaf wrapping an already-materialized in-memory frame.
type DataFrameScan struct {
	DataFrame  *frame.DataFrame
	SchemaVal  *datatypes.Schema
	Projection []string
	Selection  expr.Expr
}

func (p *DataFrameScan) Kind() PlanKind { return PlanDataFrameScan }

func (p *DataFrameScan) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *DataFrameScan) Children() []LogicalPlan { return nil }

func (p *DataFrameScan) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 0 {
		return nil, errInvalidChildren
	}
	return p, nil
}

// ---- Projection ----

// Projection selects or computes columns, derived from Exprs evaluated
// against the input schema in the Default context.
type Projection struct {
	Input     LogicalPlan
	Exprs     []expr.Expr
	SchemaVal *datatypes.Schema
}

func (p *Projection) Kind() PlanKind { return PlanProjection }

func (p *Projection) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *Projection) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Projection) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	schema, err := deriveProjectionSchema(children[0], p.Exprs)
	if err != nil {
		return nil, err
	}
	return &Projection{Input: children[0], Exprs: p.Exprs, SchemaVal: schema}, nil
}

// ---- LocalProjection ----

// LocalProjection is schema-identical to Projection; it marks its exprs as
// not eligible for optimizer pushdown.
type LocalProjection struct {
	Input     LogicalPlan
	Exprs     []expr.Expr
	SchemaVal *datatypes.Schema
}

func (p *LocalProjection) Kind() PlanKind { return PlanLocalProjection }

func (p *LocalProjection) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *LocalProjection) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *LocalProjection) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	schema, err := deriveProjectionSchema(children[0], p.Exprs)
	if err != nil {
		return nil, err
	}
	return &LocalProjection{Input: children[0], Exprs: p.Exprs, SchemaVal: schema}, nil
}

// ---- Aggregate ----

// Aggregate groups input by Keys and reduces with Aggs. Keys is never
// empty.
type Aggregate struct {
	Input     LogicalPlan
	Keys      []expr.Expr
	Aggs      []expr.Expr
	SchemaVal *datatypes.Schema
	Apply     interface{} // opaque user-defined post-aggregation hook, if any
}

func (p *Aggregate) Kind() PlanKind { return PlanAggregate }

func (p *Aggregate) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *Aggregate) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Aggregate) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	schema, err := deriveAggregateSchema(children[0], p.Keys, p.Aggs)
	if err != nil {
		return nil, err
	}
	return &Aggregate{Input: children[0], Keys: p.Keys, Aggs: p.Aggs, SchemaVal: schema, Apply: p.Apply}, nil
}

// ---- Join ----

// JoinType is the join mode; the LP carries it opaquely for the physical
// planner without interpreting it beyond the Inner/Cross distinction Join
// schema derivation needs.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinOuter
	JoinCross
	JoinSemi
	JoinAnti
)

func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "INNER"
	case JoinLeft:
		return "LEFT"
	case JoinOuter:
		return "OUTER"
	case JoinCross:
		return "CROSS"
	case JoinSemi:
		return "SEMI"
	case JoinAnti:
		return "ANTI"
	default:
		return "UNKNOWN"
	}
}

// Join combines Left and Right on the key expressions LeftOn/RightOn.
type Join struct {
	Left      LogicalPlan
	Right     LogicalPlan
	How       JoinType
	LeftOn    []expr.Expr
	RightOn   []expr.Expr
	SchemaVal *datatypes.Schema
	AllowPar  bool
	ForcePar  bool
}

func (p *Join) Kind() PlanKind { return PlanJoin }

func (p *Join) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *Join) Children() []LogicalPlan { return []LogicalPlan{p.Left, p.Right} }

func (p *Join) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 2 {
		return nil, errInvalidChildren
	}
	leftSchema, err := children[0].Schema()
	if err != nil {
		return nil, err
	}
	rightSchema, err := children[1].Schema()
	if err != nil {
		return nil, err
	}
	schema, err := DeriveJoinSchema(leftSchema, rightSchema, p.RightOn)
	if err != nil {
		return nil, err
	}
	return &Join{
		Left: children[0], Right: children[1], How: p.How,
		LeftOn: p.LeftOn, RightOn: p.RightOn, SchemaVal: schema,
		AllowPar: p.AllowPar, ForcePar: p.ForcePar,
	}, nil
}

// DeriveJoinSchema implements the §4.6 join schema algorithm: every left
// field survives unchanged, every right field whose output name is a join
// key collapses into the matching left key, and every other right field is
// kept, renamed with a "_right" suffix if its name collides with a left
// field.
func DeriveJoinSchema(left, right *datatypes.Schema, rightOn []expr.Expr) (*datatypes.Schema, error) {
	leftNames := make(map[string]struct{}, len(left.Fields))
	fields := make([]datatypes.Field, 0, len(left.Fields)+len(right.Fields))
	for _, f := range left.Fields {
		leftNames[f.Name] = struct{}{}
		fields = append(fields, f)
	}

	rOn := make(map[string]struct{}, len(rightOn))
	for _, e := range rightOn {
		name, err := expr.ExprToRootColumnName(e)
		if err != nil {
			return nil, fmt.Errorf("join right_on expression has no resolvable output name: %w", err)
		}
		rOn[name] = struct{}{}
	}

	for _, f := range right.Fields {
		if _, onKey := rOn[f.Name]; onKey {
			continue
		}
		if _, collides := leftNames[f.Name]; collides {
			f.Name = f.Name + "_right"
		}
		fields = append(fields, f)
	}
	return datatypes.NewSchema(fields...), nil
}

// ---- HStack ----

// HStack appends or upserts computed columns onto input's schema.
type HStack struct {
	Input     LogicalPlan
	Exprs     []expr.Expr
	SchemaVal *datatypes.Schema
}

func (p *HStack) Kind() PlanKind { return PlanHStack }

func (p *HStack) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *HStack) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *HStack) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	inputSchema, err := children[0].Schema()
	if err != nil {
		return nil, err
	}
	schema, err := deriveHStackSchema(inputSchema, p.Exprs)
	if err != nil {
		return nil, err
	}
	return &HStack{Input: children[0], Exprs: p.Exprs, SchemaVal: schema}, nil
}

func deriveHStackSchema(input *datatypes.Schema, exprs []expr.Expr) (*datatypes.Schema, error) {
	fields := append([]datatypes.Field{}, input.Fields...)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	for _, e := range exprs {
		field, err := expr.ToField(e, input, expr.Default)
		if err != nil {
			return nil, err
		}
		if i, ok := index[field.Name]; ok {
			fields[i] = field
		} else {
			index[field.Name] = len(fields)
			fields = append(fields, field)
		}
	}
	return datatypes.NewSchema(fields...), nil
}

// ---- Distinct ----

// Distinct removes duplicate rows, optionally scoped to Subset columns.
type Distinct struct {
	Input         LogicalPlan
	MaintainOrder bool
	Subset        []string
}

func (p *Distinct) Kind() PlanKind { return PlanDistinct }

func (p *Distinct) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Distinct) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Distinct) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Distinct{Input: children[0], MaintainOrder: p.MaintainOrder, Subset: p.Subset}, nil
}

// ---- Sort ----

// Sort orders input's rows by ByColumn; Reverse has the same length as
// ByColumn.
type Sort struct {
	Input    LogicalPlan
	ByColumn []expr.Expr
	Reverse  []bool
}

func (p *Sort) Kind() PlanKind { return PlanSort }

func (p *Sort) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Sort) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Sort) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Sort{Input: children[0], ByColumn: p.ByColumn, Reverse: p.Reverse}, nil
}

// ---- Explode ----

// Explode expands list-typed Columns into one row per element.
type Explode struct {
	Input   LogicalPlan
	Columns []string
}

func (p *Explode) Kind() PlanKind { return PlanExplode }

func (p *Explode) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Explode) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Explode) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Explode{Input: children[0], Columns: p.Columns}, nil
}

// ---- Slice ----

// Slice restricts input to Len rows starting at Offset (signed: negative
// offsets count from the end).
type Slice struct {
	Input  LogicalPlan
	Offset int
	Len    int
}

func (p *Slice) Kind() PlanKind { return PlanSlice }

func (p *Slice) Schema() (*datatypes.Schema, error) { return p.Input.Schema() }

func (p *Slice) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Slice) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Slice{Input: children[0], Offset: p.Offset, Len: p.Len}, nil
}

// ---- Melt ----

// Melt unpivots ValueVars into a (variable, value) pair of columns,
// preserving IdVars and every other input field untouched.
type Melt struct {
	Input     LogicalPlan
	IdVars    []string
	ValueVars []string
	SchemaVal *datatypes.Schema
}

func (p *Melt) Kind() PlanKind { return PlanMelt }

func (p *Melt) Schema() (*datatypes.Schema, error) { return p.SchemaVal, nil }

func (p *Melt) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Melt) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	inputSchema, err := children[0].Schema()
	if err != nil {
		return nil, err
	}
	schema, err := DeriveMeltSchema(inputSchema, p.IdVars, p.ValueVars)
	if err != nil {
		return nil, err
	}
	return &Melt{Input: children[0], IdVars: p.IdVars, ValueVars: p.ValueVars, SchemaVal: schema}, nil
}

// DeriveMeltSchema implements the §4.7 melt schema algorithm.
func DeriveMeltSchema(input *datatypes.Schema, idVars, valueVars []string) (*datatypes.Schema, error) {
	if len(valueVars) == 0 {
		return nil, fmt.Errorf("melt requires at least one value_vars column")
	}
	valueVarSet := make(map[string]struct{}, len(valueVars))
	for _, name := range valueVars {
		valueVarSet[name] = struct{}{}
	}

	firstField, ok := input.FieldWithName(valueVars[0])
	if !ok {
		return nil, fmt.Errorf("melt value_vars[0] %q not found in input schema", valueVars[0])
	}

	fields := make([]datatypes.Field, 0, len(input.Fields)+2)
	for _, f := range input.Fields {
		if _, isValue := valueVarSet[f.Name]; isValue {
			continue
		}
		fields = append(fields, f)
	}
	fields = append(fields,
		datatypes.Field{Name: "variable", DataType: datatypes.String{}},
		datatypes.Field{Name: "value", DataType: firstField.DataType},
	)
	return datatypes.NewSchema(fields...), nil
}

// ---- Udf ----

// UdfOptimizations enumerates the optimizer pushdown opt-outs a Udf plan
// node may request; they must be preserved verbatim through plan rewrites.
type UdfOptimizations struct {
	PredicatePushdown  bool
	ProjectionPushdown bool
}

// Udf wraps an opaque user-defined dataframe-to-dataframe function. Its
// schema is the declared SchemaVal if present, else the input's schema.
type Udf struct {
	Input         LogicalPlan
	Function      interface{}
	Optimizations UdfOptimizations
	SchemaVal     *datatypes.Schema
}

func (p *Udf) Kind() PlanKind { return PlanUdf }

func (p *Udf) Schema() (*datatypes.Schema, error) {
	if p.SchemaVal != nil {
		return p.SchemaVal, nil
	}
	return p.Input.Schema()
}

func (p *Udf) Children() []LogicalPlan { return []LogicalPlan{p.Input} }

func (p *Udf) WithChildren(children []LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errInvalidChildren
	}
	return &Udf{Input: children[0], Function: p.Function, Optimizations: p.Optimizations, SchemaVal: p.SchemaVal}, nil
}

// ---- shared schema derivation helpers ----

func deriveProjectionSchema(input LogicalPlan, exprs []expr.Expr) (*datatypes.Schema, error) {
	inputSchema, err := input.Schema()
	if err != nil {
		return nil, err
	}
	fields := make([]datatypes.Field, len(exprs))
	for i, e := range exprs {
		field, err := expr.ToField(e, inputSchema, projectionContext(e))
		if err != nil {
			return nil, err
		}
		fields[i] = field
	}
	return datatypes.NewSchema(fields...), nil
}

// projectionContext picks Aggregation for a bare (possibly aliased) AggExpr —
// e.g. the count(*) collapse RewriteProjections produces — and Default for
// everything else, since a plain Project otherwise has no group-by to
// aggregate within.
func projectionContext(e expr.Expr) expr.Context {
	inner, _ := expr.UnwrapAlias(e)
	if _, ok := inner.(*expr.AggExpr); ok {
		return expr.Aggregation
	}
	return expr.Default
}

func deriveAggregateSchema(input LogicalPlan, keys, aggs []expr.Expr) (*datatypes.Schema, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("aggregate requires at least one group-by key")
	}
	inputSchema, err := input.Schema()
	if err != nil {
		return nil, err
	}
	fields := make([]datatypes.Field, 0, len(keys)+len(aggs))
	for _, k := range keys {
		field, err := expr.ToField(k, inputSchema, expr.Default)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	for _, a := range aggs {
		field, err := expr.ToField(a, inputSchema, expr.Aggregation)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	merged, err := datatypes.TryMerge(datatypes.NewSchema(fields...))
	if err != nil {
		return nil, err
	}
	return merged, nil
}
