package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnn1t1s/golars/datatypes"
)

func singleFieldSchema() *datatypes.Schema {
	return datatypes.NewSchema(datatypes.Field{Name: "a", DataType: datatypes.Int64{}})
}

func TestRewriteWildcardInsideWhenThen(t *testing.T) {
	condition := &BinaryExpr{left: Wildcard(), right: Lit(int64(0)), op: OpGreater}
	e := When(condition).Then(Lit(int64(1))).Otherwise(Lit(int64(0)))
	out, err := ReplaceWildcardWithColumn(e, singleFieldSchema(), false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	rewritten, ok := out[0].(*WhenThenExpr)
	require.True(t, ok)
	assert.Equal(t, "col(a)", rewritten.when.(*BinaryExpr).left.String())
}

func TestRewriteWildcardInsideFunction(t *testing.T) {
	e := Function("abs", datatypes.Int64{}, Wildcard())
	out, err := ReplaceWildcardWithColumn(e, singleFieldSchema(), false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	fn, ok := out[0].(*FunctionExpr)
	require.True(t, ok)
	assert.Equal(t, "col(a)", fn.inputs[0].String())
}

func TestRewriteWildcardInsideBinaryFunction(t *testing.T) {
	e := BinaryFunction("corr", Wildcard(), Col("a"), datatypes.Float64{})
	out, err := ReplaceWildcardWithColumn(e, singleFieldSchema(), false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	bf, ok := out[0].(*BinaryFunctionExpr)
	require.True(t, ok)
	assert.Equal(t, "col(a)", bf.left.String())
}

func TestRewriteWildcardInsideQuantile(t *testing.T) {
	e := Quantile(Wildcard(), 0.5)
	out, err := ReplaceWildcardWithColumn(e, singleFieldSchema(), false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	q, ok := out[0].(*QuantileExpr)
	require.True(t, ok)
	assert.Equal(t, "col(a)", q.expr.String())
}

func TestRewriteWildcardInsideTernary(t *testing.T) {
	e := &TernaryExpr{expr: Wildcard(), arg1: Lit(int64(1)), arg2: Lit(int64(2)), op: OpStrReplace}
	out, err := ReplaceWildcardWithColumn(e, singleFieldSchema(), false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	tern, ok := out[0].(*TernaryExpr)
	require.True(t, ok)
	assert.Equal(t, "col(a)", tern.expr.String())
}
