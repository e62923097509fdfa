// Package core defines the parse-tree node types for HQL/JPQL statements.
//
// The node set is closed: every grammar rule maps to exactly one struct, and
// consumers dispatch with exhaustive type switches. Nodes own their children
// exclusively, are built bottom-up during parsing, and are read-only afterward.
package core

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	stmtNode() // Marker method to distinguish statements
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}
