// Package token defines the lexeme set produced by the Minispec lexer.
package token

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	// Invalid marks a byte the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the token stream.
	EOF

	Ident

	// IntLit is an unsized integer literal (plain decimal, or 'd/'b/'h-prefixed).
	IntLit
	// SizedIntLit is a sized integer literal (N'b..., N'h..., N'd...); kept as raw
	// text and never evaluated at elaboration time.
	SizedIntLit
	StringLit

	// Keywords.
	KwModule
	KwEndmodule
	KwInterface
	KwEndinterface
	KwFunction
	KwEndfunction
	KwMethod
	KwEndmethod
	KwRule
	KwEndrule
	KwRules
	KwEndrules
	KwAction
	KwEndaction
	KwActionvalue
	KwEndactionvalue
	KwIf
	KwElse
	KwFor
	KwCase
	KwEndcase
	KwMatches
	KwReturn
	KwImport
	KwBsvImport
	KwTypedef
	KwEnum
	KwStruct
	KwInteger
	KwBit
	KwBool
	KwString
	KwInput
	KwDefault
	KwLet
	KwBegin
	KwEnd
	KwTrue
	KwFalse
	KwVector
	KwLog2

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	ShiftLeft
	ShiftRight
	Amp
	Pipe
	Caret
	CaretTilde
	TildeCaret
	Tilde
	Bang
	AmpAmp
	PipePipe
	Lt
	LtEq
	Gt
	GtEq
	EqEq
	BangEq
	Assign
	LtMinus

	// Punctuation.
	Hash
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Question
	Colon
	Semicolon
	Comma
	Dot
	Apostrophe
)

// String renders a human-readable name, used in diagnostics and tests.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "identifier",
	IntLit: "integer literal", SizedIntLit: "sized integer literal", StringLit: "string literal",
	KwModule: "module", KwEndmodule: "endmodule", KwInterface: "interface", KwEndinterface: "endinterface",
	KwFunction: "function", KwEndfunction: "endfunction", KwMethod: "method", KwEndmethod: "endmethod",
	KwRule: "rule", KwEndrule: "endrule", KwRules: "rules", KwEndrules: "endrules",
	KwAction: "action", KwEndaction: "endaction", KwActionvalue: "actionvalue", KwEndactionvalue: "endactionvalue",
	KwIf: "if", KwElse: "else", KwFor: "for", KwCase: "case", KwEndcase: "endcase", KwMatches: "matches",
	KwReturn: "return", KwImport: "import", KwBsvImport: "bsvimport",
	KwTypedef: "typedef", KwEnum: "enum", KwStruct: "struct",
	KwInteger: "Integer", KwBit: "Bit", KwBool: "Bool", KwString: "String",
	KwInput: "input", KwDefault: "default", KwLet: "let", KwBegin: "begin", KwEnd: "end",
	KwTrue: "True", KwFalse: "False", KwVector: "Vector", KwLog2: "log2",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	ShiftLeft: "<<", ShiftRight: ">>", Amp: "&", Pipe: "|", Caret: "^",
	CaretTilde: "^~", TildeCaret: "~^", Tilde: "~", Bang: "!", AmpAmp: "&&", PipePipe: "||",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", EqEq: "==", BangEq: "!=",
	Assign: "=", LtMinus: "<-",
	Hash: "#", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Question: "?", Colon: ":", Semicolon: ";",
	Comma: ",", Dot: ".", Apostrophe: "'",
}
