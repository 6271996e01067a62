package lazy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnn1t1s/golars/expr"
)

func TestToALPLowersFilterThenProjectPlan(t *testing.T) {
	b := FromExistingDF(testFrame(t))
	b, err := b.Filter(expr.Col("a").Gt(expr.Lit(int64(1))))
	require.NoError(t, err)
	b, err = b.Project([]expr.Expr{
		expr.Col("a").Add(expr.Lit(int64(1))).Alias("a_plus_one"),
		expr.Col("b"),
	})
	require.NoError(t, err)

	planArena := NewPlanArena()
	exprArena := NewArena()
	rootID, err := ToALP(b.Build(), planArena, exprArena)
	require.NoError(t, err)

	root, ok := planArena.Get(rootID)
	require.True(t, ok)
	assert.Equal(t, PlanProjection, root.Kind)
	require.Len(t, root.Inputs, 1)
	require.Len(t, root.Exprs, 2)
	payload, ok := root.Payload.(LPProjection)
	require.True(t, ok)
	assert.False(t, payload.Local)

	filterNode, ok := planArena.Get(root.Inputs[0])
	require.True(t, ok)
	assert.Equal(t, PlanSelection, filterNode.Kind)
	require.Len(t, filterNode.Exprs, 1)

	scanNode, ok := planArena.Get(filterNode.Inputs[0])
	require.True(t, ok)
	assert.Equal(t, PlanDataFrameScan, scanNode.Kind)
	assert.Empty(t, scanNode.Inputs)

	predNode := exprArena.MustGet(filterNode.Exprs[0])
	assert.Equal(t, KindBinary, predNode.Kind)
	assert.Equal(t, Binary{Op: OpGt}, predNode.Payload)
	require.Len(t, predNode.Children, 2)
	leftNode := exprArena.MustGet(predNode.Children[0])
	assert.Equal(t, KindColumn, leftNode.Kind)

	aliasNode := exprArena.MustGet(root.Exprs[0])
	assert.Equal(t, KindAlias, aliasNode.Kind)
	require.Len(t, aliasNode.Children, 1)
	addNode := exprArena.MustGet(aliasNode.Children[0])
	assert.Equal(t, KindBinary, addNode.Kind)
	assert.Equal(t, Binary{Op: OpAdd}, addNode.Payload)

	colNode := exprArena.MustGet(root.Exprs[1])
	assert.Equal(t, KindColumn, colNode.Kind)
	name, ok := exprArena.String(colNode.Payload.(Column).NameID)
	require.True(t, ok)
	assert.Equal(t, "b", name)
}

func TestToALPLowersGroupByAggregate(t *testing.T) {
	b := FromExistingDF(testFrame(t))
	b, err := b.GroupBy(
		[]expr.Expr{expr.Col("a")},
		[]expr.Expr{expr.Col("b").Sum().Alias("b_sum")},
		nil,
	)
	require.NoError(t, err)

	planArena := NewPlanArena()
	exprArena := NewArena()
	rootID, err := ToALP(b.Build(), planArena, exprArena)
	require.NoError(t, err)

	root, ok := planArena.Get(rootID)
	require.True(t, ok)
	assert.Equal(t, PlanAggregate, root.Kind)
	require.Len(t, root.Exprs, 2)
	payload, ok := root.Payload.(LPAggregate)
	require.True(t, ok)
	assert.Equal(t, 1, payload.KeyCount)

	keyNode := exprArena.MustGet(root.Exprs[0])
	assert.Equal(t, KindColumn, keyNode.Kind)

	aggAliasNode := exprArena.MustGet(root.Exprs[1])
	assert.Equal(t, KindAlias, aggAliasNode.Kind)
	aggNode := exprArena.MustGet(aggAliasNode.Children[0])
	assert.Equal(t, KindAgg, aggNode.Kind)
	assert.Equal(t, Agg{Op: AggSum}, aggNode.Payload)
}

func TestToALPRejectsNilPlan(t *testing.T) {
	_, err := ToALP(nil, NewPlanArena(), NewArena())
	assert.Error(t, err)
}

func TestLowerExprBetweenAndIsIn(t *testing.T) {
	arena := NewArena()

	betweenID, err := LowerExpr(arena, expr.Col("a").Between(expr.Lit(int64(1)), expr.Lit(int64(10))))
	require.NoError(t, err)
	betweenNode := arena.MustGet(betweenID)
	assert.Equal(t, KindBetween, betweenNode.Kind)
	require.Len(t, betweenNode.Children, 3)

	isInID, err := LowerExpr(arena, expr.Col("a").IsIn([]expr.Expr{expr.Lit(int64(1)), expr.Lit(int64(2))}))
	require.NoError(t, err)
	isInNode := arena.MustGet(isInID)
	assert.Equal(t, KindIsIn, isInNode.Kind)
	require.Len(t, isInNode.Children, 3)
}
