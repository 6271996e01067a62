package lazy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tnn1t1s/golars/datatypes"
	"github.com/tnn1t1s/golars/expr"
)

// Describe returns the recursive, indentation-free debug representation of
// a plan: each variant prints its label and immediately-useful fields, then
// its input(s) on new lines prefixed by a tab.
func Describe(plan LogicalPlan) string {
	var sb strings.Builder
	describeNode(plan, &sb, "")
	return sb.String()
}

func describeNode(plan LogicalPlan, sb *strings.Builder, indent string) {
	if plan == nil {
		return
	}
	switch node := plan.(type) {
	case *Selection:
		fmt.Fprintf(sb, "FILTER %s FROM\n", node.Predicate.String())
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Cache:
		fmt.Fprintf(sb, "CACHE\n")
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *CsvScan:
		fmt.Fprintf(sb, "CSV SCAN %s; PROJECT %s COLUMNS; SELECTION: %s", node.Path, projectCount(node.WithColumns, node.SchemaVal), predicateString(node.ScanPredicate))
	case *ParquetScan:
		fmt.Fprintf(sb, "PARQUET SCAN %s; PROJECT %s COLUMNS; SELECTION: %s", node.Path, projectCount(node.WithColumns, node.SchemaVal), predicateString(node.ScanPredicate))
	case *DataFrameScan:
		fmt.Fprintf(sb, "TABLE; PROJECT %s COLUMNS; SELECTION: %s", projectCount(node.Projection, node.SchemaVal), predicateString(node.Selection))
	case *Projection:
		fmt.Fprintf(sb, "SELECT %d COLUMNS FROM\n", len(node.Exprs))
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *LocalProjection:
		fmt.Fprintf(sb, "LOCAL SELECT %d COLUMNS FROM\n", len(node.Exprs))
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Aggregate:
		fmt.Fprintf(sb, "AGGREGATE\n")
		sb.WriteString(indent + "\t")
		fmt.Fprintf(sb, "%s BY %s FROM\n", exprNames(node.Aggs), exprNames(node.Keys))
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Join:
		fmt.Fprintf(sb, "%s JOIN:\n", node.How.String())
		sb.WriteString(indent + "\tLEFT ON: " + exprNames(node.LeftOn) + "\n")
		sb.WriteString(indent + "\t")
		describeNode(node.Left, sb, indent+"\t")
		sb.WriteString("\n" + indent + "\tRIGHT ON: " + exprNames(node.RightOn) + "\n")
		sb.WriteString(indent + "\t")
		describeNode(node.Right, sb, indent+"\t")
	case *HStack:
		fmt.Fprintf(sb, "WITH COLUMNS %s FROM\n", exprNames(node.Exprs))
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Distinct:
		fmt.Fprintf(sb, "UNIQUE FROM\n")
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Sort:
		fmt.Fprintf(sb, "SORT BY %s FROM\n", exprNames(node.ByColumn))
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Explode:
		fmt.Fprintf(sb, "EXPLODE %v FROM\n", node.Columns)
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Slice:
		fmt.Fprintf(sb, "SLICE[offset: %d, len: %d] FROM\n", node.Offset, node.Len)
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Melt:
		fmt.Fprintf(sb, "MELT id=%v value=%v FROM\n", node.IdVars, node.ValueVars)
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	case *Udf:
		fmt.Fprintf(sb, "UDF FROM\n")
		sb.WriteString(indent + "\t")
		describeNode(node.Input, sb, indent+"\t")
	default:
		fmt.Fprintf(sb, "%s\n", plan.Kind().String())
	}
}

func projectCount(withColumns []string, schema *datatypes.Schema) string {
	if withColumns == nil {
		return "*"
	}
	total := 0
	if schema != nil {
		total = len(schema.Fields)
	}
	return fmt.Sprintf("%d/%d", len(withColumns), total)
}

func predicateString(e expr.Expr) string {
	if e == nil {
		return "None"
	}
	return e.String()
}

func exprNames(exprs []expr.Expr) string {
	names := make([]string, len(exprs))
	for i, e := range exprs {
		names[i] = e.String()
	}
	return strings.Join(names, ", ")
}

// Dot writes the Graphviz DOT representation of plan into acc, following
// the branch/id node-id scheme used to keep join subtrees' labels unique.
func Dot(plan LogicalPlan, acc *strings.Builder, branch, id int, prevLabel string) {
	label := dotLabel(plan, branch, id)
	if id == 0 {
		acc.WriteString("graph  polars_query {\n")
		fmt.Fprintf(acc, "\"%s\"\n", label)
	} else {
		fmt.Fprintf(acc, "\"%s\" -- \"%s\"\n", prevLabel, label)
	}

	switch node := plan.(type) {
	case *Join:
		Dot(node.Left, acc, branch+10, id+1, label)
		Dot(node.Right, acc, branch+20, id+1, label)
	default:
		children := plan.Children()
		for _, child := range children {
			Dot(child, acc, branch, id+1, label)
		}
	}

	if id == 0 {
		acc.WriteString("}\n")
	}
}

func dotLabel(plan LogicalPlan, branch, id int) string {
	suffix := fmt.Sprintf("[(%d, %d)]", branch, id)
	switch node := plan.(type) {
	case *Selection:
		return fmt.Sprintf("σ %s %s", clipPredicate(node.Predicate.String()), suffix)
	case *Cache:
		return "CACHE " + suffix
	case *CsvScan:
		return fmt.Sprintf("CSV %s %s", node.Path, suffix)
	case *ParquetScan:
		return fmt.Sprintf("PARQUET %s %s", node.Path, suffix)
	case *DataFrameScan:
		return "TABLE " + suffix
	case *Projection:
		return fmt.Sprintf("π %s %s", ratio(len(node.Exprs), inputFieldCount(node.Input)), suffix)
	case *LocalProjection:
		return fmt.Sprintf("π(local) %s %s", ratio(len(node.Exprs), inputFieldCount(node.Input)), suffix)
	case *Aggregate:
		return fmt.Sprintf("AGG %s %s", exprNames(node.Aggs), suffix)
	case *Join:
		return fmt.Sprintf("JOIN %s %s", node.How.String(), suffix)
	case *HStack:
		return fmt.Sprintf("WITH_COLUMNS %s %s", exprNames(node.Exprs), suffix)
	case *Distinct:
		return "UNIQUE " + suffix
	case *Sort:
		return fmt.Sprintf("SORT BY %s %s", exprNames(node.ByColumn), suffix)
	case *Explode:
		return fmt.Sprintf("EXPLODE %v %s", node.Columns, suffix)
	case *Slice:
		return fmt.Sprintf("SLICE(%d, %d) %s", node.Offset, node.Len, suffix)
	case *Melt:
		return "MELT " + suffix
	case *Udf:
		return "UDF " + suffix
	default:
		return plan.Kind().String() + " " + suffix
	}
}

// ratio formats a selectivity label as selected/total, where total is the
// plan node's *input* field count — e.g. selecting 1 column out of 3 renders
// "1/3" (spec's worked example), not the output schema's own field count,
// which for a column projection always trivially equals n.
func ratio(n, total int) string {
	return strconv.Itoa(n) + "/" + strconv.Itoa(total)
}

// inputFieldCount resolves a plan node's input schema field count for the
// DOT ratio label. A schema error (or nil input) falls back to 0 rather than
// failing the whole explain render.
func inputFieldCount(input LogicalPlan) int {
	if input == nil {
		return 0
	}
	schema, err := input.Schema()
	if err != nil || schema == nil {
		return 0
	}
	return len(schema.Fields)
}

// clipPredicate truncates a predicate string to 25 characters (appending
// "...") and strips brackets, matching the DOT label convention.
func clipPredicate(s string) string {
	s = strings.ReplaceAll(s, "[", "")
	s = strings.ReplaceAll(s, "]", "")
	if len(s) > 25 {
		return s[:25] + "..."
	}
	return s
}
