package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tnn1t1s/golars/datatypes"
)

func testSchema() *datatypes.Schema {
	return datatypes.NewSchema(
		datatypes.Field{Name: "a", DataType: datatypes.Int64{}},
		datatypes.Field{Name: "b", DataType: datatypes.String{}},
	)
}

func TestToFieldColumnLooksUpSchema(t *testing.T) {
	field, err := ToField(Col("a"), testSchema(), Default)
	assert.NoError(t, err)
	assert.Equal(t, "a", field.Name)
	assert.Equal(t, datatypes.Int64{}, field.DataType)
}

func TestToFieldColumnMissingErrors(t *testing.T) {
	_, err := ToField(Col("missing"), testSchema(), Default)
	assert.Error(t, err)
}

func TestToFieldAliasRenamesField(t *testing.T) {
	field, err := ToField(Col("a").Alias("renamed"), testSchema(), Default)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", field.Name)
}

func TestToFieldAggRequiresAggregationContext(t *testing.T) {
	agg := Col("a").Sum()
	_, err := ToField(agg, testSchema(), Default)
	assert.Error(t, err)

	field, err := ToField(agg, testSchema(), Aggregation)
	assert.NoError(t, err)
	assert.Equal(t, "a_sum", field.Name)
}

func TestOutputNameUnwrapsCommonShapes(t *testing.T) {
	assert.Equal(t, "a", OutputName(Col("a")))
	assert.Equal(t, "a", OutputName(Col("a").Add(Lit(1))))
	assert.Equal(t, "renamed", OutputName(Col("a").Alias("renamed")))
	assert.Equal(t, "a_sum", OutputName(Col("a").Sum()))
}

func TestExprToRootColumnNameSingleColumn(t *testing.T) {
	name, err := ExprToRootColumnName(Col("a").Add(Lit(1)))
	assert.NoError(t, err)
	assert.Equal(t, "a", name)
}

func TestExprToRootColumnNameErrorsOnMultipleColumns(t *testing.T) {
	_, err := ExprToRootColumnName(Col("a").Add(Col("b")))
	assert.Error(t, err)
}

func TestExprToRootColumnNamesCollectsAllDistinct(t *testing.T) {
	names := ExprToRootColumnNames(Col("a").Add(Col("b")).Gt(Col("a")))
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestRenameExprRootNameRenamesColumnReferences(t *testing.T) {
	renamed := RenameExprRootName(Col("a").Add(Lit(1)), "a", "a_right")
	assert.Equal(t, "a_right", ExprToRootColumnNames(renamed)[0])
}

func TestRenameExprRootNameLeavesOtherNamesAlone(t *testing.T) {
	renamed := RenameExprRootName(Col("b").Add(Lit(1)), "a", "a_right")
	assert.Equal(t, "b", ExprToRootColumnNames(renamed)[0])
}

func TestHasExprFindsNestedMatch(t *testing.T) {
	predicate := Col("a").Gt(1).And(Col("b").Lt(10))
	found := HasExpr(predicate, func(e Expr) bool {
		c, ok := e.(*ColumnExpr)
		return ok && c.Name() == "b"
	})
	assert.True(t, found)
}

func TestIsAggExprDetectsAggregations(t *testing.T) {
	assert.True(t, IsAggExpr(Col("a").Sum()))
	assert.False(t, IsAggExpr(Col("a").Add(Lit(1))))
}

func TestCombinePredicatesExprFoldsWithAnd(t *testing.T) {
	combined := CombinePredicatesExpr(Col("a").Gt(1), Col("b").Lt(10))
	assert.Equal(t, "((col(a) > lit(1)) & (col(b) < lit(10)))", combined.String())
}

func TestCombinePredicatesExprEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, CombinePredicatesExpr())
}
