package lazy

import (
	"fmt"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/expr"
	"github.com/tnn1t1s/golars/frame"
	gio "github.com/tnn1t1s/golars/io"
)

// LogicalPlanBuilder is a move-consuming fluent constructor: each method
// returns a new builder wrapping a new root, never mutating the receiver.
type LogicalPlanBuilder struct {
	root LogicalPlan
}

// NewLogicalPlanBuilder wraps an already-built plan.
func NewLogicalPlanBuilder(root LogicalPlan) LogicalPlanBuilder {
	return LogicalPlanBuilder{root: root}
}

// Build yields the owned root.
func (b LogicalPlanBuilder) Build() LogicalPlan { return b.root }

func (b LogicalPlanBuilder) schema() (*datatypes.Schema, error) {
	if b.root == nil {
		return nil, errMissingInput
	}
	return b.root.Schema()
}

// FromExistingDF produces a DataFrameScan with no projection or selection.
func FromExistingDF(df *frame.DataFrame) LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&DataFrameScan{
		DataFrame: df,
		SchemaVal: df.Schema(),
	})
}

// ScanCSVOptions carries every CsvScan construction parameter.
type ScanCSVOptions struct {
	HasHeader      bool
	Delimiter      rune
	IgnoreErrors   bool
	SkipRows       int
	StopAfterNRows int // 0 means unbounded
	WithColumns    []string
	CacheScan      bool
	LowMemory      bool
}

// ScanCSV opens path, infers (or probes) its schema from a 100-row sample
// by default, and produces a leaf CsvScan builder.
func ScanCSV(path string, opts ScanCSVOptions) (LogicalPlanBuilder, error) {
	readOpts := []gio.CSVReadOption{
		gio.WithHeader(opts.HasHeader),
		gio.WithSkipRows(opts.SkipRows),
	}
	if opts.Delimiter != 0 {
		readOpts = append(readOpts, gio.WithDelimiter(opts.Delimiter))
	}
	if len(opts.WithColumns) > 0 {
		readOpts = append(readOpts, gio.WithColumns(opts.WithColumns))
	}

	source := NewCSVSource(path, readOpts...)
	schema, err := source.Schema()
	if err != nil {
		return LogicalPlanBuilder{}, fmt.Errorf("scan_csv %s: %w", path, err)
	}

	stopAfter := opts.StopAfterNRows
	if stopAfter == 0 {
		stopAfter = -1
	}
	return NewLogicalPlanBuilder(&CsvScan{
		Path:           path,
		SchemaVal:      schema,
		HasHeader:      opts.HasHeader,
		Delimiter:      opts.Delimiter,
		IgnoreErrors:   opts.IgnoreErrors,
		SkipRows:       opts.SkipRows,
		StopAfterNRows: stopAfter,
		WithColumns:    opts.WithColumns,
		CacheScan:      opts.CacheScan,
		LowMemory:      opts.LowMemory,
	}), nil
}

// ScanParquetOptions carries every ParquetScan construction parameter.
type ScanParquetOptions struct {
	WithColumns    []string
	StopAfterNRows int
	CacheScan      bool
}

// ScanParquet opens path to read its metadata schema and produces a leaf
// ParquetScan builder.
func ScanParquet(path string, opts ScanParquetOptions) (LogicalPlanBuilder, error) {
	var readOpts []gio.ParquetReadOption
	if len(opts.WithColumns) > 0 {
		readOpts = append(readOpts, gio.WithParquetColumns(opts.WithColumns))
	}
	if opts.StopAfterNRows > 0 {
		readOpts = append(readOpts, gio.WithNumRows(int64(opts.StopAfterNRows)))
	}

	df, err := gio.ReadParquet(path, readOpts...)
	if err != nil {
		return LogicalPlanBuilder{}, fmt.Errorf("scan_parquet %s: %w", path, err)
	}

	stopAfter := opts.StopAfterNRows
	if stopAfter == 0 {
		stopAfter = -1
	}
	return NewLogicalPlanBuilder(&ParquetScan{
		Path:           path,
		SchemaVal:      df.Schema(),
		WithColumns:    opts.WithColumns,
		StopAfterNRows: stopAfter,
		CacheScan:      opts.CacheScan,
	}), nil
}

// Project runs prepare_projection against the current schema; an
// empty-after-rewrite result ("select-all") returns the builder unchanged.
func (b LogicalPlanBuilder) Project(exprs []expr.Expr) (LogicalPlanBuilder, error) {
	schema, err := b.schema()
	if err != nil {
		return b, err
	}
	rewritten, err := expr.RewriteProjections(exprs, schema)
	if err != nil {
		return b, err
	}
	if len(rewritten) == 0 {
		return b, nil
	}
	outSchema, err := deriveProjectionSchema(b.root, rewritten)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&Projection{Input: b.root, Exprs: rewritten, SchemaVal: outSchema}), nil
}

// ProjectLocal is Project but marks its output as not eligible for
// optimizer pushdown.
func (b LogicalPlanBuilder) ProjectLocal(exprs []expr.Expr) (LogicalPlanBuilder, error) {
	schema, err := b.schema()
	if err != nil {
		return b, err
	}
	rewritten, err := expr.RewriteProjections(exprs, schema)
	if err != nil {
		return b, err
	}
	if len(rewritten) == 0 {
		return b, nil
	}
	outSchema, err := deriveProjectionSchema(b.root, rewritten)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&LocalProjection{Input: b.root, Exprs: rewritten, SchemaVal: outSchema}), nil
}

// FillNone replaces every null cell of every input column with value,
// implemented as a LocalProjection of per-column when/then/otherwise
// expressions.
func (b LogicalPlanBuilder) FillNone(value expr.Expr) (LogicalPlanBuilder, error) {
	schema, err := b.schema()
	if err != nil {
		return b, err
	}
	exprs := make([]expr.Expr, len(schema.Fields))
	for i, field := range schema.Fields {
		col := expr.Col(field.Name)
		exprs[i] = expr.When(col.IsNull()).Then(value).Otherwise(col).Alias(field.Name)
	}
	return b.ProjectLocal(exprs)
}

// WithColumns derives the new schema by upserting each expression's field
// into the input schema by name, then wraps in HStack.
func (b LogicalPlanBuilder) WithColumns(exprs []expr.Expr) (LogicalPlanBuilder, error) {
	inputSchema, err := b.schema()
	if err != nil {
		return b, err
	}
	rewritten, err := expr.RewriteProjections(exprs, inputSchema)
	if err != nil {
		return b, err
	}
	outSchema, err := deriveHStackSchema(inputSchema, rewritten)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&HStack{Input: b.root, Exprs: rewritten, SchemaVal: outSchema}), nil
}

// Filter rewrites a wildcard-bearing predicate into one predicate per
// field ANDed together, then wraps in Selection.
func (b LogicalPlanBuilder) Filter(predicate expr.Expr) (LogicalPlanBuilder, error) {
	schema, err := b.schema()
	if err != nil {
		return b, err
	}
	if expr.HasExpr(predicate, isWildcardOrExcept) {
		rewritten, err := expr.ReplaceWildcardWithColumn(predicate, schema, true)
		if err != nil {
			return b, err
		}
		predicate = expr.CombinePredicatesExpr(rewritten...)
	}
	return NewLogicalPlanBuilder(&Selection{Input: b.root, Predicate: predicate}), nil
}

func isWildcardOrExcept(e expr.Expr) bool {
	switch e.(type) {
	case *expr.WildcardExpr, *expr.ExceptExpr:
		return true
	default:
		return false
	}
}

// GroupBy requires non-empty keys, rewrites aggs against the input schema,
// and wraps in Aggregate with schema = merge(keys in Default, aggs in
// Aggregation).
func (b LogicalPlanBuilder) GroupBy(keys, aggs []expr.Expr, apply interface{}) (LogicalPlanBuilder, error) {
	if len(keys) == 0 {
		return b, fmt.Errorf("groupby requires at least one key")
	}
	schema, err := b.schema()
	if err != nil {
		return b, err
	}
	rewrittenAggs, err := expr.RewriteProjections(aggs, schema)
	if err != nil {
		return b, err
	}
	outSchema, err := deriveAggregateSchema(b.root, keys, rewrittenAggs)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&Aggregate{Input: b.root, Keys: keys, Aggs: rewrittenAggs, SchemaVal: outSchema, Apply: apply}), nil
}

// Sort orders rows by byColumn; reverse must have matching length.
func (b LogicalPlanBuilder) Sort(byColumn []expr.Expr, reverse []bool) (LogicalPlanBuilder, error) {
	if len(byColumn) != len(reverse) {
		return b, fmt.Errorf("sort: reverse length %d does not match by_column length %d", len(reverse), len(byColumn))
	}
	return NewLogicalPlanBuilder(&Sort{Input: b.root, ByColumn: byColumn, Reverse: reverse}), nil
}

// Explode expands list-typed columns into one row per element.
func (b LogicalPlanBuilder) Explode(columns []string) LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&Explode{Input: b.root, Columns: columns})
}

// Slice restricts to len rows starting at offset.
func (b LogicalPlanBuilder) Slice(offset, length int) LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&Slice{Input: b.root, Offset: offset, Len: length})
}

// DropDuplicates removes duplicate rows, optionally scoped to subset.
func (b LogicalPlanBuilder) DropDuplicates(maintainOrder bool, subset []string) LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&Distinct{Input: b.root, MaintainOrder: maintainOrder, Subset: subset})
}

// Cache marks the current root for result reuse.
func (b LogicalPlanBuilder) Cache() LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&Cache{Input: b.root})
}

// Melt unpivots valueVars into (variable, value) columns.
func (b LogicalPlanBuilder) Melt(idVars, valueVars []string) (LogicalPlanBuilder, error) {
	inputSchema, err := b.schema()
	if err != nil {
		return b, err
	}
	schema, err := DeriveMeltSchema(inputSchema, idVars, valueVars)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&Melt{Input: b.root, IdVars: idVars, ValueVars: valueVars, SchemaVal: schema}), nil
}

// Join combines b's root with other's root. See DeriveJoinSchema (§4.6).
func (b LogicalPlanBuilder) Join(other LogicalPlanBuilder, how JoinType, leftOn, rightOn []expr.Expr, allowPar, forcePar bool) (LogicalPlanBuilder, error) {
	leftSchema, err := b.schema()
	if err != nil {
		return b, err
	}
	rightSchema, err := other.schema()
	if err != nil {
		return b, err
	}
	schema, err := DeriveJoinSchema(leftSchema, rightSchema, rightOn)
	if err != nil {
		return b, err
	}
	return NewLogicalPlanBuilder(&Join{
		Left: b.root, Right: other.root, How: how,
		LeftOn: leftOn, RightOn: rightOn, SchemaVal: schema,
		AllowPar: allowPar, ForcePar: forcePar,
	}), nil
}

// Map wraps fn as a Udf node; optimizations enumerates the pushdown
// opt-outs the optimizer must preserve verbatim.
func (b LogicalPlanBuilder) Map(fn interface{}, optimizations UdfOptimizations, schema *datatypes.Schema) LogicalPlanBuilder {
	return NewLogicalPlanBuilder(&Udf{Input: b.root, Function: fn, Optimizations: optimizations, SchemaVal: schema})
}
