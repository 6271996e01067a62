package lazy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/expr"
)

func schemaOf(fields ...datatypes.Field) *datatypes.Schema {
	return datatypes.NewSchema(fields...)
}

func TestDefaultLogicalPlanIsEmptyDataFrameScan(t *testing.T) {
	plan := DefaultLogicalPlan()
	assert.Equal(t, PlanDataFrameScan, plan.Kind())
	schema, err := plan.Schema()
	assert.NoError(t, err)
	assert.Equal(t, 0, len(schema.Fields))
	assert.Nil(t, plan.Children())
}

func TestSelectionSchemaPassesThroughInput(t *testing.T) {
	scan := &DataFrameScan{SchemaVal: schemaOf(
		datatypes.Field{Name: "a", DataType: datatypes.Int64{}},
	)}
	sel := &Selection{Input: scan, Predicate: expr.Col("a").Gt(1)}

	schema, err := sel.Schema()
	assert.NoError(t, err)
	assert.Equal(t, scan.SchemaVal, schema)
	assert.Equal(t, []LogicalPlan{scan}, sel.Children())
}

func TestSelectionWithChildrenRejectsWrongArity(t *testing.T) {
	sel := &Selection{Predicate: expr.Col("a").Gt(1)}
	_, err := sel.WithChildren(nil)
	assert.Error(t, err)
	_, err = sel.WithChildren([]LogicalPlan{DefaultLogicalPlan(), DefaultLogicalPlan()})
	assert.Error(t, err)
}

func TestProjectionSchemaDerivedFromExprs(t *testing.T) {
	scan := &DataFrameScan{SchemaVal: schemaOf(
		datatypes.Field{Name: "a", DataType: datatypes.Int64{}},
		datatypes.Field{Name: "b", DataType: datatypes.String{}},
	)}
	proj := &Projection{Input: scan, Exprs: []expr.Expr{expr.Col("a")}}
	result, err := proj.WithChildren([]LogicalPlan{scan})
	assert.NoError(t, err)

	schema, err := result.Schema()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(schema.Fields))
	assert.Equal(t, "a", schema.Fields[0].Name)
}

func TestJoinSchemaCollapsesRightOnKeyAndSuffixesCollisions(t *testing.T) {
	left := schemaOf(
		datatypes.Field{Name: "id", DataType: datatypes.Int64{}},
		datatypes.Field{Name: "name", DataType: datatypes.String{}},
	)
	right := schemaOf(
		datatypes.Field{Name: "id", DataType: datatypes.Int64{}},
		datatypes.Field{Name: "name", DataType: datatypes.String{}},
		datatypes.Field{Name: "score", DataType: datatypes.Float64{}},
	)

	schema, err := DeriveJoinSchema(left, right, []expr.Expr{expr.Col("id")})
	assert.NoError(t, err)

	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "name", "name_right", "score"}, names)
}

func TestJoinSchemaErrorsOnUnresolvableRightOn(t *testing.T) {
	left := schemaOf(datatypes.Field{Name: "a", DataType: datatypes.Int64{}})
	right := schemaOf(datatypes.Field{Name: "b", DataType: datatypes.Int64{}})

	multiColumn := expr.Col("a").Add(expr.Col("b"))
	_, err := DeriveJoinSchema(left, right, []expr.Expr{multiColumn})
	assert.Error(t, err)
}

func TestMeltSchemaDropsValueVarsAndAppendsVariableValue(t *testing.T) {
	input := schemaOf(
		datatypes.Field{Name: "id", DataType: datatypes.Int64{}},
		datatypes.Field{Name: "x", DataType: datatypes.Float64{}},
		datatypes.Field{Name: "y", DataType: datatypes.Float64{}},
	)

	schema, err := DeriveMeltSchema(input, []string{"id"}, []string{"x", "y"})
	assert.NoError(t, err)

	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "variable", "value"}, names)
	variableField, _ := schema.FieldWithName("variable")
	assert.Equal(t, datatypes.String{}, variableField.DataType)
	valueField, _ := schema.FieldWithName("value")
	assert.Equal(t, datatypes.Float64{}, valueField.DataType)
}

func TestMeltSchemaRequiresValueVars(t *testing.T) {
	input := schemaOf(datatypes.Field{Name: "id", DataType: datatypes.Int64{}})
	_, err := DeriveMeltSchema(input, []string{"id"}, nil)
	assert.Error(t, err)
}

func TestHStackUpsertsByName(t *testing.T) {
	scan := &DataFrameScan{SchemaVal: schemaOf(
		datatypes.Field{Name: "a", DataType: datatypes.Int64{}},
	)}
	hstack := &HStack{Input: scan, Exprs: []expr.Expr{
		expr.Col("a").Add(expr.Lit(1)).Alias("a"),
		expr.Lit("x").Alias("b"),
	}}
	result, err := hstack.WithChildren([]LogicalPlan{scan})
	assert.NoError(t, err)

	schema, err := result.Schema()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(schema.Fields))
	assert.Equal(t, "a", schema.Fields[0].Name)
	assert.Equal(t, "b", schema.Fields[1].Name)
}

func TestAggregateRequiresKeys(t *testing.T) {
	scan := &DataFrameScan{SchemaVal: schemaOf(datatypes.Field{Name: "a", DataType: datatypes.Int64{}})}
	_, err := deriveAggregateSchema(scan, nil, nil)
	assert.Error(t, err)
}

func TestSortWithChildrenPreservesReverse(t *testing.T) {
	scan := DefaultLogicalPlan()
	sort := &Sort{Input: scan, ByColumn: []expr.Expr{expr.Col("a")}, Reverse: []bool{true}}
	result, err := sort.WithChildren([]LogicalPlan{scan})
	assert.NoError(t, err)
	assert.Equal(t, []bool{true}, result.(*Sort).Reverse)
}

func TestUdfSchemaFallsBackToInputWhenUnset(t *testing.T) {
	scan := &DataFrameScan{SchemaVal: schemaOf(datatypes.Field{Name: "a", DataType: datatypes.Int64{}})}
	udf := &Udf{Input: scan}
	schema, err := udf.Schema()
	assert.NoError(t, err)
	assert.Equal(t, scan.SchemaVal, schema)
}

func TestJoinTypeString(t *testing.T) {
	assert.Equal(t, "INNER", JoinInner.String())
	assert.Equal(t, "ANTI", JoinAnti.String())
}
