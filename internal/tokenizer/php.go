package tokenizer

import (
	"github.com/mvp-joe/fndecl/internal/token"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// atomicKinds are emitted as a single token without descending.
var atomicKinds = map[string]bool{
	"comment":         true,
	"string":          true,
	"encapsed_string": true,
	"heredoc":         true,
	"nowdoc":          true,
	"text":            true,
	"php_tag":         true,
	"variable_name":   true,
}

var namedFunctionParents = map[string]bool{
	"function_definition": true,
	"method_declaration":  true,
}

// Both names appear across tree-sitter-php releases.
var closureParents = map[string]bool{
	"anonymous_function":                     true,
	"anonymous_function_creation_expression": true,
}

// walkLeaves visits the leaves of the tree in source order.
func walkLeaves(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}

	if node.ChildCount() == 0 || atomicKinds[node.Kind()] {
		visit(node)
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkLeaves(node.Child(uint(i)), visit)
	}
}

// classify maps a leaf node to a token kind.
func classify(n *sitter.Node) token.Kind {
	kind := n.Kind()
	if n.IsNamed() {
		if kind == "comment" {
			return token.KindComment
		}
		return token.KindOther
	}

	parent := parentKind(n)

	switch kind {
	case "function":
		switch {
		case namedFunctionParents[parent]:
			return token.KindFunction
		case closureParents[parent]:
			return token.KindClosure
		}
	case "use":
		return token.KindUse
	case "array":
		if parent == "array_creation_expression" {
			return token.KindArray
		}
	case "(":
		return token.KindOpenParen
	case ")":
		return token.KindCloseParen
	case "{":
		return token.KindOpenCurly
	case "}":
		return token.KindCloseCurly
	case "[":
		if parent == "array_creation_expression" && n.PrevSibling() == nil {
			return token.KindOpenShortArray
		}
		return token.KindOpenSquare
	case "#[":
		// Attribute groups close with a plain "]".
		return token.KindOpenSquare
	case "]":
		return token.KindCloseSquare
	case ";":
		return token.KindSemicolon
	}

	return token.KindOther
}

func parentKind(n *sitter.Node) string {
	parent := n.Parent()
	if parent == nil {
		return ""
	}
	return parent.Kind()
}
