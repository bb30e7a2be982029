package format

import (
	"strings"

	"github.com/sqlc-dev/chqualify/ast"
)

func formatSelectUnion(sb *strings.Builder, q *ast.SelectUnion) {
	if q == nil {
		return
	}
	for i, sel := range q.Selects {
		if i > 0 {
			sb.WriteString(" UNION ")
			if len(q.UnionModes) > i-1 && q.UnionModes[i-1] != "" {
				sb.WriteString(q.UnionModes[i-1])
				sb.WriteString(" ")
			}
		}
		formatSelectQuery(sb, sel)
	}
}

func formatSelectQuery(sb *strings.Builder, q *ast.SelectQuery) {
	if q == nil {
		return
	}

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	expressionList(sb, q.Columns)

	if q.Tables != nil {
		sb.WriteString(" FROM ")
		formatTableList(sb, q.Tables)
	}

	if q.PreWhere != nil {
		sb.WriteString(" PREWHERE ")
		Expression(sb, q.PreWhere)
	}

	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}

	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		expressionList(sb, q.GroupBy)
	}

	if q.Having != nil {
		sb.WriteString(" HAVING ")
		Expression(sb, q.Having)
	}

	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, elem := range q.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			Expression(sb, elem.Expression)
			if elem.Descending {
				sb.WriteString(" DESC")
			}
		}
	}

	if q.Limit != nil {
		sb.WriteString(" LIMIT ")
		Expression(sb, q.Limit)
	}

	if q.Offset != nil {
		sb.WriteString(" OFFSET ")
		Expression(sb, q.Offset)
	}

	if len(q.Settings) > 0 {
		sb.WriteString(" SETTINGS ")
		formatSettings(sb, q.Settings)
	}

	if q.Format != "" {
		sb.WriteString(" FORMAT ")
		sb.WriteString(q.Format)
	}
}

func formatSettings(sb *strings.Builder, settings []*ast.SettingExpr) {
	for i, s := range settings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.Name)
		sb.WriteString(" = ")
		Expression(sb, s.Value)
	}
}

func formatTableList(sb *strings.Builder, tables *ast.TableList) {
	for i, elem := range tables.Elements {
		if i > 0 {
			formatJoinPrefix(sb, elem.Join)
		}
		formatTableExpression(sb, elem.TableExpression)
		if i > 0 && elem.Join != nil {
			formatJoinConstraint(sb, elem.Join)
		}
	}
}

func formatJoinPrefix(sb *strings.Builder, join *ast.TableJoin) {
	if join == nil || join.Comma {
		sb.WriteString(", ")
		return
	}
	sb.WriteString(" ")
	if join.Global {
		sb.WriteString("GLOBAL ")
	}
	if join.Strictness != "" {
		sb.WriteString(string(join.Strictness))
		sb.WriteString(" ")
	}
	if join.Type != "" {
		sb.WriteString(string(join.Type))
		sb.WriteString(" ")
	}
	sb.WriteString("JOIN ")
}

func formatJoinConstraint(sb *strings.Builder, join *ast.TableJoin) {
	if join.On != nil {
		sb.WriteString(" ON ")
		Expression(sb, join.On)
	} else if len(join.Using) > 0 {
		sb.WriteString(" USING (")
		expressionList(sb, join.Using)
		sb.WriteString(")")
	}
}

func formatTableExpression(sb *strings.Builder, expr *ast.TableExpression) {
	if expr == nil {
		return
	}
	switch {
	case expr.QualifiedName != nil:
		formatIdentifier(sb, expr.QualifiedName)
	case expr.Subquery != nil:
		formatSubquery(sb, expr.Subquery)
	case expr.Function != nil:
		formatFunctionCall(sb, expr.Function)
	}
	if expr.Final {
		sb.WriteString(" FINAL")
	}
	formatAlias(sb, expr.Alias)
}

func formatQualifiedStatement(sb *strings.Builder, q *ast.QualifiedStatement) {
	switch q.Type {
	case ast.CreateTable, ast.CreateDatabase, ast.CreateView, ast.CreateMaterializedView:
		formatCreate(sb, q)
		return
	case ast.AlterTable:
		formatAlter(sb, q)
		return
	}

	switch q.Type {
	case ast.DropTable, ast.DropDatabase, ast.DropView:
		sb.WriteString("DROP ")
		if q.Temporary {
			sb.WriteString("TEMPORARY ")
		}
		sb.WriteString(strings.TrimPrefix(string(q.Type), "DROP "))
	case ast.TruncateTable, ast.OptimizeTable, ast.ExistsTable, ast.CheckTable:
		verb := strings.TrimSuffix(string(q.Type), " TABLE")
		sb.WriteString(verb)
		sb.WriteString(" ")
		if q.Temporary {
			sb.WriteString("TEMPORARY ")
		}
		sb.WriteString("TABLE")
	case ast.ShowCreateTable:
		sb.WriteString("SHOW CREATE ")
		if q.Temporary {
			sb.WriteString("TEMPORARY ")
		}
		sb.WriteString("TABLE")
	}
	if q.IfExists {
		sb.WriteString(" IF EXISTS")
	}
	sb.WriteString(" ")
	if q.Type == ast.DropDatabase {
		Name(sb, q.Database)
	} else {
		databaseAndTable(sb, q.Database, q.Table)
	}
	formatOnCluster(sb, q.OnCluster)

	if q.Partition != nil {
		sb.WriteString(" PARTITION ")
		Expression(sb, q.Partition)
	}
	if q.Final {
		sb.WriteString(" FINAL")
	}
	if q.Sync {
		sb.WriteString(" SYNC")
	}
}

func formatOnCluster(sb *strings.Builder, cluster string) {
	if cluster == "" {
		return
	}
	sb.WriteString(" ON CLUSTER ")
	Name(sb, cluster)
}

func formatCreate(sb *strings.Builder, q *ast.QualifiedStatement) {
	sb.WriteString("CREATE ")
	if q.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	if q.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString(strings.TrimPrefix(string(q.Type), "CREATE "))
	if q.IfNotExists {
		sb.WriteString(" IF NOT EXISTS")
	}
	sb.WriteString(" ")
	if q.Type == ast.CreateDatabase {
		Name(sb, q.Database)
	} else {
		databaseAndTable(sb, q.Database, q.Table)
	}
	formatOnCluster(sb, q.OnCluster)

	if len(q.Columns) > 0 {
		sb.WriteString(" (")
		for i, col := range q.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatColumnDeclaration(sb, col)
		}
		sb.WriteString(")")
	}

	if q.Engine != nil {
		sb.WriteString(" ENGINE = ")
		sb.WriteString(q.Engine.Name)
		if q.Engine.HasParentheses {
			sb.WriteString("(")
			expressionList(sb, q.Engine.Parameters)
			sb.WriteString(")")
		}
	}
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		keyExpression(sb, q.OrderBy)
	}
	if q.PartitionBy != nil {
		sb.WriteString(" PARTITION BY ")
		Expression(sb, q.PartitionBy)
	}
	if len(q.PrimaryKey) > 0 {
		sb.WriteString(" PRIMARY KEY ")
		keyExpression(sb, q.PrimaryKey)
	}
	if len(q.Settings) > 0 {
		sb.WriteString(" SETTINGS ")
		formatSettings(sb, q.Settings)
	}
	if q.Populate {
		sb.WriteString(" POPULATE")
	}
	if q.AsSelect != nil {
		sb.WriteString(" AS ")
		formatSelectUnion(sb, q.AsSelect)
	}
}

func keyExpression(sb *strings.Builder, exprs []ast.Expression) {
	if len(exprs) == 1 {
		Expression(sb, exprs[0])
		return
	}
	sb.WriteString("(")
	expressionList(sb, exprs)
	sb.WriteString(")")
}

func formatColumnDeclaration(sb *strings.Builder, col *ast.ColumnDeclaration) {
	Name(sb, col.Name)
	if col.Type != nil {
		sb.WriteString(" ")
		formatDataType(sb, col.Type)
	}
	if col.DefaultKind != "" {
		sb.WriteString(" ")
		sb.WriteString(col.DefaultKind)
		sb.WriteString(" ")
		Expression(sb, col.Default)
	}
}

func formatAlter(sb *strings.Builder, q *ast.QualifiedStatement) {
	sb.WriteString("ALTER TABLE ")
	databaseAndTable(sb, q.Database, q.Table)
	formatOnCluster(sb, q.OnCluster)
	for i, cmd := range q.Commands {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(string(cmd.Type))
		switch cmd.Type {
		case ast.AlterAddColumn:
			if cmd.IfNotExists {
				sb.WriteString(" IF NOT EXISTS")
			}
			sb.WriteString(" ")
			formatColumnDeclaration(sb, cmd.Column)
			if cmd.AfterColumn != "" {
				sb.WriteString(" AFTER ")
				Name(sb, cmd.AfterColumn)
			}
		case ast.AlterDropColumn:
			if cmd.IfExists {
				sb.WriteString(" IF EXISTS")
			}
			sb.WriteString(" ")
			Name(sb, cmd.ColumnName)
		case ast.AlterModifyColumn:
			if cmd.IfExists {
				sb.WriteString(" IF EXISTS")
			}
			sb.WriteString(" ")
			formatColumnDeclaration(sb, cmd.Column)
		}
	}
}

func formatRenameStatement(sb *strings.Builder, r *ast.RenameStatement) {
	sb.WriteString("RENAME TABLE ")
	for i, elem := range r.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		databaseAndTable(sb, elem.From.Database, elem.From.Table)
		sb.WriteString(" TO ")
		databaseAndTable(sb, elem.To.Database, elem.To.Table)
	}
	formatOnCluster(sb, r.OnCluster)
}

func formatInsertStatement(sb *strings.Builder, ins *ast.InsertStatement) {
	sb.WriteString("INSERT INTO ")
	databaseAndTable(sb, ins.Database, ins.Table)
	if len(ins.Columns) > 0 {
		sb.WriteString(" (")
		for i, col := range ins.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatIdentifier(sb, col)
		}
		sb.WriteString(")")
	}
	switch {
	case len(ins.Values) > 0:
		sb.WriteString(" VALUES ")
		for i, row := range ins.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(")
			expressionList(sb, row)
			sb.WriteString(")")
		}
	case ins.Select != nil:
		sb.WriteString(" ")
		formatSelectUnion(sb, ins.Select)
	case ins.Format != "":
		sb.WriteString(" FORMAT ")
		sb.WriteString(ins.Format)
	}
}
