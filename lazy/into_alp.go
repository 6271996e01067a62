package lazy

import (
	"fmt"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/expr"
)

// PlanArena stores ALogicalPlan nodes, the index-based mirror of a
// LogicalPlan tree that ToALP lowers into for optimizer consumption. It
// pairs with an expr Arena the same way polars keeps lp_arena and
// expr_arena separate: every PlanNode's Exprs field holds ids into the
// paired Arena, not into this one.
type PlanArena struct {
	nodes []PlanNode
}

// NewPlanArena creates an empty PlanArena.
func NewPlanArena() *PlanArena {
	return &PlanArena{}
}

// PlanNode is the arena-indexed mirror of one LogicalPlan node: Inputs are
// child plan nodes in this same PlanArena, Exprs are expression roots in
// the paired expr Arena, and Payload carries whatever scalar/non-tree data
// that PlanKind needs (paths, join type, offsets, column-name lists, ...).
type PlanNode struct {
	Kind    PlanKind
	Inputs  []NodeID
	Exprs   []NodeID
	Payload interface{}
	Schema  *datatypes.Schema
}

// Add inserts node and returns its id.
func (a *PlanArena) Add(node PlanNode) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, node)
	return id
}

// Get returns the node for id.
func (a *PlanArena) Get(id NodeID) (PlanNode, bool) {
	if id < 0 || int(id) >= len(a.nodes) {
		return PlanNode{}, false
	}
	return a.nodes[id], true
}

// LPSelection is PlanSelection's payload; Exprs holds [predicate].
type LPSelection struct{}

// LPCache is PlanCache's payload.
type LPCache struct{}

// LPCsvScan is PlanCsvScan's payload. Exprs holds the (optional)
// ScanPredicate followed by Aggregate, split back via PredicateCount.
type LPCsvScan struct {
	Path           string
	HasHeader      bool
	Delimiter      rune
	IgnoreErrors   bool
	SkipRows       int
	StopAfterNRows int
	WithColumns    []string
	CacheScan      bool
	LowMemory      bool
	PredicateCount int
}

// LPParquetScan is PlanParquetScan's payload, shaped like LPCsvScan.
type LPParquetScan struct {
	Path           string
	WithColumns    []string
	StopAfterNRows int
	CacheScan      bool
	PredicateCount int
}

// LPDataFrameScan is PlanDataFrameScan's payload. Exprs holds the
// (optional) row-selection predicate.
type LPDataFrameScan struct {
	DataFrame      *frameRef
	Projection     []string
	HasSelection   bool
}

// LPProjection is PlanProjection/PlanLocalProjection's payload; Exprs holds
// the full projected expression list.
type LPProjection struct {
	Local bool
}

// LPAggregate is PlanAggregate's payload. Exprs holds Keys followed by
// Aggs, split back via KeyCount.
type LPAggregate struct {
	KeyCount int
	Apply    interface{}
}

// LPJoin is PlanJoin's payload. Exprs holds LeftOn followed by RightOn,
// split back via LeftOnCount.
type LPJoin struct {
	How         JoinType
	LeftOnCount int
	AllowPar    bool
	ForcePar    bool
}

// LPHStack is PlanHStack's payload; Exprs holds the appended/upserted
// expression list.
type LPHStack struct{}

// LPDistinct is PlanDistinct's payload.
type LPDistinct struct {
	MaintainOrder bool
	Subset        []string
}

// LPSort is PlanSort's payload; Exprs holds ByColumn, Reverse parallels it
// position-for-position.
type LPSort struct {
	Reverse []bool
}

// LPExplode is PlanExplode's payload.
type LPExplode struct {
	Columns []string
}

// LPSlice is PlanSlice's payload.
type LPSlice struct {
	Offset int
	Len    int
}

// LPMelt is PlanMelt's payload.
type LPMelt struct {
	IdVars    []string
	ValueVars []string
}

// LPUdf is PlanUdf's payload. Function is kept opaque (it is a Go closure,
// not a tree node) — only its optimizer pushdown flags are carried.
type LPUdf struct {
	Function      interface{}
	Optimizations UdfOptimizations
}

// ToALP lowers plan — and every expr.Expr it carries — into arena form in
// one shot, returning the id of plan's root node in planArena. This is the
// into_alp conversion the optimizer would consume; it does not mutate plan
// and nothing downstream reads the arenas back into a LogicalPlan (that
// direction, and any optimizer pass over the lowered form, is explicitly
// out of scope).
func ToALP(plan LogicalPlan, planArena *PlanArena, exprArena *Arena) (NodeID, error) {
	if plan == nil {
		return InvalidNodeID, fmt.Errorf("lazy: cannot lower a nil plan")
	}

	children := plan.Children()
	inputs := make([]NodeID, len(children))
	for i, child := range children {
		id, err := ToALP(child, planArena, exprArena)
		if err != nil {
			return InvalidNodeID, err
		}
		inputs[i] = id
	}

	schema, err := plan.Schema()
	if err != nil {
		return InvalidNodeID, err
	}

	exprIDs, payload, err := lowerPlanNode(plan, exprArena)
	if err != nil {
		return InvalidNodeID, err
	}

	return planArena.Add(PlanNode{
		Kind:    plan.Kind(),
		Inputs:  inputs,
		Exprs:   exprIDs,
		Payload: payload,
		Schema:  schema,
	}), nil
}

// frameRef wraps a *frame.DataFrame opaquely so this file does not need to
// import the frame package's full surface just to carry a pointer through
// the arena.
type frameRef struct {
	df interface{}
}

func lowerPlanNode(plan LogicalPlan, exprArena *Arena) ([]NodeID, interface{}, error) {
	switch p := plan.(type) {
	case *Selection:
		predID, err := LowerExpr(exprArena, p.Predicate)
		if err != nil {
			return nil, nil, err
		}
		return []NodeID{predID}, LPSelection{}, nil

	case *Cache:
		return nil, LPCache{}, nil

	case *CsvScan:
		exprIDs, err := lowerOptionalThenList(exprArena, p.ScanPredicate, p.Aggregate)
		if err != nil {
			return nil, nil, err
		}
		predicateCount := 0
		if p.ScanPredicate != nil {
			predicateCount = 1
		}
		return exprIDs, LPCsvScan{
			Path: p.Path, HasHeader: p.HasHeader, Delimiter: p.Delimiter,
			IgnoreErrors: p.IgnoreErrors, SkipRows: p.SkipRows, StopAfterNRows: p.StopAfterNRows,
			WithColumns: p.WithColumns, CacheScan: p.CacheScan, LowMemory: p.LowMemory,
			PredicateCount: predicateCount,
		}, nil

	case *ParquetScan:
		exprIDs, err := lowerOptionalThenList(exprArena, p.ScanPredicate, p.Aggregate)
		if err != nil {
			return nil, nil, err
		}
		predicateCount := 0
		if p.ScanPredicate != nil {
			predicateCount = 1
		}
		return exprIDs, LPParquetScan{
			Path: p.Path, WithColumns: p.WithColumns, StopAfterNRows: p.StopAfterNRows,
			CacheScan: p.CacheScan, PredicateCount: predicateCount,
		}, nil

	case *DataFrameScan:
		var exprIDs []NodeID
		hasSelection := p.Selection != nil
		if hasSelection {
			id, err := LowerExpr(exprArena, p.Selection)
			if err != nil {
				return nil, nil, err
			}
			exprIDs = []NodeID{id}
		}
		return exprIDs, LPDataFrameScan{
			DataFrame: &frameRef{df: p.DataFrame}, Projection: p.Projection, HasSelection: hasSelection,
		}, nil

	case *Projection:
		exprIDs, err := lowerExprList(exprArena, p.Exprs)
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPProjection{Local: false}, nil

	case *LocalProjection:
		exprIDs, err := lowerExprList(exprArena, p.Exprs)
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPProjection{Local: true}, nil

	case *Aggregate:
		exprIDs, err := lowerExprList(exprArena, append(append([]expr.Expr{}, p.Keys...), p.Aggs...))
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPAggregate{KeyCount: len(p.Keys), Apply: p.Apply}, nil

	case *Join:
		exprIDs, err := lowerExprList(exprArena, append(append([]expr.Expr{}, p.LeftOn...), p.RightOn...))
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPJoin{How: p.How, LeftOnCount: len(p.LeftOn), AllowPar: p.AllowPar, ForcePar: p.ForcePar}, nil

	case *HStack:
		exprIDs, err := lowerExprList(exprArena, p.Exprs)
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPHStack{}, nil

	case *Distinct:
		return nil, LPDistinct{MaintainOrder: p.MaintainOrder, Subset: p.Subset}, nil

	case *Sort:
		exprIDs, err := lowerExprList(exprArena, p.ByColumn)
		if err != nil {
			return nil, nil, err
		}
		return exprIDs, LPSort{Reverse: p.Reverse}, nil

	case *Explode:
		return nil, LPExplode{Columns: p.Columns}, nil

	case *Slice:
		return nil, LPSlice{Offset: p.Offset, Len: p.Len}, nil

	case *Melt:
		return nil, LPMelt{IdVars: p.IdVars, ValueVars: p.ValueVars}, nil

	case *Udf:
		return nil, LPUdf{Function: p.Function, Optimizations: p.Optimizations}, nil

	default:
		return nil, nil, fmt.Errorf("lazy: ToALP: unhandled plan kind %s", plan.Kind())
	}
}

func lowerExprList(arena *Arena, exprs []expr.Expr) ([]NodeID, error) {
	ids := make([]NodeID, len(exprs))
	for i, e := range exprs {
		id, err := LowerExpr(arena, e)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func lowerOptionalThenList(arena *Arena, optional expr.Expr, list []expr.Expr) ([]NodeID, error) {
	var ids []NodeID
	if optional != nil {
		id, err := LowerExpr(arena, optional)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	rest, err := lowerExprList(arena, list)
	if err != nil {
		return nil, err
	}
	return append(ids, rest...), nil
}

// LowerExpr lowers a single expr.Expr tree into arena form, returning the
// id of its root node. Every concrete Expr type has a corresponding Node
// payload and Add* constructor on Arena; this is the expression half of
// the into_alp conversion ToALP drives per plan node.
func LowerExpr(arena *Arena, e expr.Expr) (NodeID, error) {
	switch ex := e.(type) {
	case *expr.ColumnExpr:
		return arena.AddColumn(ex.Name()), nil

	case *expr.LiteralExpr:
		return arena.AddLiteral(ex.Value()), nil

	case *expr.AliasExpr:
		innerExpr, alias := expr.UnwrapAlias(ex)
		inner, err := LowerExpr(arena, innerExpr)
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddAlias(alias, inner), nil

	case *expr.BinaryExpr:
		left, err := LowerExpr(arena, ex.Left())
		if err != nil {
			return InvalidNodeID, err
		}
		right, err := LowerExpr(arena, ex.Right())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddBinary(lowerBinaryOp(ex.Op()), left, right), nil

	case *expr.UnaryExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddUnary(lowerUnaryOp(ex.Op()), inner), nil

	case *expr.AggExpr:
		inner, err := LowerExpr(arena, ex.Input())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddAgg(lowerAggOp(ex.AggType()), inner), nil

	case *expr.CastExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddCast(fmt.Sprintf("%v", ex.TargetType()), inner), nil

	case *expr.BetweenExpr:
		innerExpr, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		lower, err := LowerExpr(arena, ex.Lower())
		if err != nil {
			return InvalidNodeID, err
		}
		upper, err := LowerExpr(arena, ex.Upper())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddBetween(innerExpr, lower, upper), nil

	case *expr.IsInExpr:
		innerExpr, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		values, err := lowerExprList(arena, ex.Values())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddIsIn(innerExpr, values), nil

	case *expr.WindowExpr:
		fn, err := LowerExpr(arena, ex.Function())
		if err != nil {
			return InvalidNodeID, err
		}
		partitionIDs, err := lowerExprList(arena, ex.PartitionBy())
		if err != nil {
			return InvalidNodeID, err
		}
		orderIDs, err := lowerExprList(arena, ex.OrderByExprs())
		if err != nil {
			return InvalidNodeID, err
		}
		children := append([]NodeID{fn}, partitionIDs...)
		children = append(children, orderIDs...)
		return arena.Add(Node{
			Kind:     KindWindow,
			Payload:  Window{PartitionLen: len(partitionIDs), OrderLen: len(orderIDs)},
			Children: children,
		}), nil

	case *expr.SortExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddSort(ex.Descending(), ex.NullsLast(), inner), nil

	case *expr.SortByExpr:
		target, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		by, err := lowerExprList(arena, ex.By())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddSortBy(ex.Descending(), target, by), nil

	case *expr.SliceExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddSlice(ex.Offset(), ex.Length(), inner), nil

	case *expr.TakeExpr:
		input, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		idx, err := LowerExpr(arena, ex.Idx())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddTake(input, idx), nil

	case *expr.ShiftExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddShift(ex.Periods(), inner), nil

	case *expr.QuantileExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddQuantile(ex.QuantileValue(), inner), nil

	case *expr.FunctionExpr:
		inputs, err := lowerExprList(arena, ex.Inputs())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddFunction(ex.FuncName(), inputs), nil

	case *expr.BinaryFunctionExpr:
		left, err := LowerExpr(arena, ex.Left())
		if err != nil {
			return InvalidNodeID, err
		}
		right, err := LowerExpr(arena, ex.Right())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddBinaryFunction(ex.FuncName(), left, right), nil

	case *expr.WildcardExpr:
		return arena.AddWildcard(), nil

	case *expr.ExceptExpr:
		return arena.AddExcept(ex.Excluded()), nil

	case *expr.WhenThenExpr:
		when, err := LowerExpr(arena, ex.When())
		if err != nil {
			return InvalidNodeID, err
		}
		then, err := LowerExpr(arena, ex.Then())
		if err != nil {
			return InvalidNodeID, err
		}
		if ex.Otherwise() == nil {
			return arena.AddWhenThen(when, then, nil), nil
		}
		otherwise, err := LowerExpr(arena, ex.Otherwise())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddWhenThen(when, then, &otherwise), nil

	case *expr.TernaryExpr:
		inner, err := LowerExpr(arena, ex.Expr())
		if err != nil {
			return InvalidNodeID, err
		}
		arg1, err := LowerExpr(arena, ex.Arg1())
		if err != nil {
			return InvalidNodeID, err
		}
		arg2, err := LowerExpr(arena, ex.Arg2())
		if err != nil {
			return InvalidNodeID, err
		}
		return arena.AddTernary(lowerTernaryOp(ex.Op()), inner, arg1, arg2), nil

	default:
		return InvalidNodeID, fmt.Errorf("lazy: LowerExpr: unhandled expression type %T", e)
	}
}

func lowerTernaryOp(op expr.TernaryOp) TernaryOp {
	switch op {
	case expr.OpStrReplace:
		return OpStrReplace
	default:
		return OpStrReplace
	}
}

func lowerBinaryOp(op expr.BinaryOp) BinaryOp {
	switch op {
	case expr.OpAdd:
		return OpAdd
	case expr.OpSubtract:
		return OpSub
	case expr.OpMultiply:
		return OpMul
	case expr.OpDivide:
		return OpDiv
	case expr.OpModulo:
		return OpMod
	case expr.OpEqual:
		return OpEq
	case expr.OpNotEqual:
		return OpNeq
	case expr.OpLess:
		return OpLt
	case expr.OpLessEqual:
		return OpLte
	case expr.OpGreater:
		return OpGt
	case expr.OpGreaterEqual:
		return OpGte
	case expr.OpAnd:
		return OpAnd
	case expr.OpOr:
		return OpOr
	case expr.OpStrContains:
		return OpStrContains
	case expr.OpStrStartsWith:
		return OpStrStartsWith
	case expr.OpStrEndsWith:
		return OpStrEndsWith
	case expr.OpStrEncode:
		return OpStrEncode
	case expr.OpStrDecode:
		return OpStrDecode
	case expr.OpStrFormat:
		return OpStrFormat
	case expr.OpStrToDateTimeFormat:
		return OpStrToDateTimeFormat
	default:
		return OpAdd
	}
}

func lowerUnaryOp(op expr.UnaryOp) UnaryOp {
	switch op {
	case expr.OpNot:
		return OpNot
	case expr.OpNegate:
		return OpNeg
	case expr.OpIsNull:
		return OpIsNull
	case expr.OpIsNotNull:
		return OpIsNotNull
	case expr.OpStrLength:
		return OpStrLength
	case expr.OpStrToUpper:
		return OpStrToUpper
	case expr.OpStrToLower:
		return OpStrToLower
	case expr.OpStrStrip:
		return OpStrStrip
	case expr.OpStrToInteger:
		return OpStrToInteger
	case expr.OpStrToFloat:
		return OpStrToFloat
	case expr.OpStrToBoolean:
		return OpStrToBoolean
	case expr.OpStrToDateTime:
		return OpStrToDateTime
	default:
		return OpNot
	}
}

func lowerAggOp(op expr.AggOp) AggOp {
	switch op {
	case expr.AggSum:
		return AggSum
	case expr.AggMean:
		return AggMean
	case expr.AggMin:
		return AggMin
	case expr.AggMax:
		return AggMax
	case expr.AggCount:
		return AggCount
	case expr.AggStd:
		return AggStd
	case expr.AggVar:
		return AggVar
	case expr.AggFirst:
		return AggFirst
	case expr.AggLast:
		return AggLast
	case expr.AggMedian:
		return AggMedian
	case expr.AggNUnique:
		return AggNUnique
	case expr.AggGroups:
		return AggGroups
	case expr.AggList:
		return AggList
	case expr.AggTopK:
		return AggTopK
	default:
		return AggSum
	}
}
