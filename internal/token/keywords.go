package token

var keywords = map[string]Kind{
	"module":       KwModule,
	"endmodule":    KwEndmodule,
	"interface":    KwInterface,
	"endinterface": KwEndinterface,
	"function":     KwFunction,
	"endfunction":  KwEndfunction,
	"method":       KwMethod,
	"endmethod":    KwEndmethod,
	"rule":         KwRule,
	"endrule":      KwEndrule,
	"rules":        KwRules,
	"endrules":     KwEndrules,
	"action":       KwAction,
	"endaction":    KwEndaction,
	"actionvalue":  KwActionvalue,
	"endactionvalue": KwEndactionvalue,
	"if":           KwIf,
	"else":         KwElse,
	"for":          KwFor,
	"case":         KwCase,
	"endcase":      KwEndcase,
	"matches":      KwMatches,
	"return":       KwReturn,
	"import":       KwImport,
	"bsvimport":    KwBsvImport,
	"typedef":      KwTypedef,
	"enum":         KwEnum,
	"struct":       KwStruct,
	"Integer":      KwInteger,
	"Bit":          KwBit,
	"Bool":         KwBool,
	"String":       KwString,
	"input":        KwInput,
	"default":      KwDefault,
	"let":          KwLet,
	"begin":        KwBegin,
	"end":          KwEnd,
	"True":         KwTrue,
	"False":        KwFalse,
	"Vector":       KwVector,
	"log2":         KwLog2,
}

// LookupKeyword reports whether ident names an MS keyword, and which one.
// MS keywords are case-sensitive; "True"/"False" are capitalized like types.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
