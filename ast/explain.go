package ast

import (
	"fmt"
	"strings"
)

// Explain returns an indented dump of the node and its generic children,
// one node per line, in the style of ClickHouse's EXPLAIN AST output.
func Explain(node Node) string {
	var b strings.Builder
	explainNode(&b, node, 0)
	return b.String()
}

func explainNode(b *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat(" ", depth)
	children := node.Children()
	name := typeName(node)
	if label := Label(node); label != "" {
		name += " " + label
	}
	if len(children) > 0 {
		fmt.Fprintf(b, "%s%s (children %d)\n", indent, name, len(children))
	} else {
		fmt.Fprintf(b, "%s%s\n", indent, name)
	}
	for _, child := range children {
		explainNode(b, child, depth+1)
	}
}

// Label returns the short detail printed next to a node's type name, such
// as an identifier's name or a statement's target.
func Label(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Name
	case *Literal:
		if n.Type == LiteralString {
			return fmt.Sprintf("'%s'", n.Value)
		}
		if n.Type == LiteralNull {
			return "NULL"
		}
		return n.Value
	case *FunctionCall:
		return n.Name
	case *BinaryExpr:
		return n.Op
	case *UnaryExpr:
		return n.Op
	case *Asterisk:
		if n.Table != "" {
			return n.Table + ".*"
		}
		return "*"
	case *QualifiedStatement:
		target := n.Table
		if n.Type.TargetsDatabase() {
			target = n.Database
		} else if n.Database != "" {
			target = n.Database + "." + n.Table
		}
		return string(n.Type) + " " + target
	case *RenameStatement:
		pairs := make([]string, 0, len(n.Elements))
		for _, e := range n.Elements {
			pairs = append(pairs, e.From.String()+" TO "+e.To.String())
		}
		return strings.Join(pairs, ", ")
	case *InsertStatement:
		if n.Database != "" {
			return n.Database + "." + n.Table
		}
		return n.Table
	case *UseStatement:
		return n.Database
	case *ColumnDeclaration:
		return n.Name
	case *DataType:
		return n.Name
	case *EngineClause:
		return n.Name
	case *AlterCommand:
		return string(n.Type)
	case *SettingExpr:
		return n.Name
	case *TableJoin:
		if n.Comma {
			return "COMMA"
		}
		parts := []string{}
		if n.Global {
			parts = append(parts, "GLOBAL")
		}
		if n.Strictness != "" {
			parts = append(parts, string(n.Strictness))
		}
		if n.Type != "" {
			parts = append(parts, string(n.Type))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func typeName(node Node) string {
	name := fmt.Sprintf("%T", node)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Description is a serializable view of a node and its generic children.
type Description struct {
	Type     string        `json:"type" yaml:"type"`
	Kind     string        `json:"kind" yaml:"kind"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Line     int           `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int           `json:"column,omitempty" yaml:"column,omitempty"`
	Children []Description `json:"children,omitempty" yaml:"children,omitempty"`
}

// Describe builds the Description tree rooted at node.
func Describe(node Node) Description {
	d := Description{
		Type:  typeName(node),
		Kind:  node.Kind().String(),
		Label: Label(node),
	}
	if pos := node.Pos(); pos.IsValid() {
		d.Line = pos.Line
		d.Column = pos.Column
	}
	for _, child := range node.Children() {
		d.Children = append(d.Children, Describe(child))
	}
	return d
}
