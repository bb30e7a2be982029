package ast

// Kind classifies a node for the rewriting passes. Every node type maps to
// exactly one Kind; types the passes never match report KindOther.
type Kind int

const (
	KindOther Kind = iota
	KindQualifiedStatement
	KindRenameStatement
	KindSelectUnion
	KindSelectQuery
	KindTableList
	KindTableListElement
	KindTableExpression
	KindIdentifier
	KindSubquery
)

var kindNames = [...]string{
	KindOther:              "Other",
	KindQualifiedStatement: "QualifiedStatement",
	KindRenameStatement:    "RenameStatement",
	KindSelectUnion:        "SelectUnion",
	KindSelectQuery:        "SelectQuery",
	KindTableList:          "TableList",
	KindTableListElement:   "TableListElement",
	KindTableExpression:    "TableExpression",
	KindIdentifier:         "Identifier",
	KindSubquery:           "Subquery",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
