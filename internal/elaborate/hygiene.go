package elaborate

import (
	"strings"
	"unicode"

	"minispec/internal/ast"
	"minispec/internal/diag"
	"minispec/internal/source"
)

// reservedWords is the union of the surface-Verilog and backend-HDL
// reserved sets a user-chosen identifier must never collide with; mk is
// reserved separately (module constructors are always user-written as
// mkFoo, but a plain binding or function named mkFoo would collide with
// the synthesized module of the same name once both are emitted).
var reservedWords = map[string]bool{
	"module": true, "endmodule": true, "interface": true, "endinterface": true,
	"function": true, "endfunction": true, "method": true, "endmethod": true,
	"rule": true, "endrule": true, "rules": true, "endrules": true,
	"action": true, "endaction": true, "actionvalue": true, "endactionvalue": true,
	"if": true, "else": true, "for": true, "case": true, "endcase": true,
	"matches": true, "return": true, "import": true, "export": true,
	"typedef": true, "enum": true, "struct": true, "union": true, "tagged": true,
	"input": true, "output": true, "default": true, "let": true,
	"begin": true, "end": true, "wire": true, "reg": true, "always": true,
	"initial": true, "assign": true, "parameter": true, "localparam": true,
	"genvar": true, "generate": true, "endgenerate": true, "package": true,
	"endpackage": true, "instance": true, "provisos": true, "deriving": true,
}

// checkIdent reports ElabReservedIdentifier and returns false when name is
// a user-declared identifier (not a module/interface constructor name)
// that starts with "mk", contains the "___input" synthesis marker, or
// equals a reserved word.
func (e *Elaborator) checkIdent(name string, n ast.Node) bool {
	if name == "" {
		return true
	}
	if strings.Contains(name, "___input") {
		e.report(diag.ElabReservedIdentifier, n, "identifier %q contains the reserved \"___input\" marker", name)
		return false
	}
	if unicode.IsLower(rune(name[0])) && strings.HasPrefix(name, "mk") {
		e.report(diag.ElabReservedIdentifier, n, "identifier %q collides with the \"mk\" module-constructor prefix", name)
		return false
	}
	if reservedWords[name] {
		e.report(diag.ElabReservedIdentifier, n, "identifier %q is a reserved word", name)
		return false
	}
	return true
}

func (e *Elaborator) checkParamNames(params []ast.Param) {
	for _, p := range params {
		e.checkIdent(p.Name, spanNode{p.Sp})
	}
}

// spanNode adapts a bare source.Span into an ast.Node, for diagnostics
// anchored to a sub-part (a Param, StructField, EnumTag) that carries a
// Span field but doesn't itself implement Node.
type spanNode struct{ sp source.Span }

func (s spanNode) Span() source.Span { return s.sp }
