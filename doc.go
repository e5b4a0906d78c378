// Package wexpr implements a codec for Wexpr, a small human-readable
// hierarchical data format with maps, arrays, strings, numbers, booleans, a
// null sentinel, base64-wrapped binary blobs, bareword identifiers,
// comments, and intra-document references.
//
// examples:
//
//	@(
//		name "glider"
//		tags #(fast quiet)
//		payload <aGVsbG8=>
//		home [base] @( x 1 y 2 )
//		spawn *[base]
//	)
//
// BNF:
//
//	document    = value
//	value       = scalar | map | array | reference | ref_def
//	scalar      = string | number | word | binary
//	map         = "@(" { key value } ")"
//	array       = "#(" { value } ")"
//	key         = word | number | string
//	reference   = "*[" ident "]"
//	ref_def     = "[" WS? ident WS? "]" value
//	ident       = [A-Za-z_][A-Za-z0-9_]*
//	word        = (char not in "<>*#@();[]" and not whitespace)+
//	string      = '"' ( escape | any-char-not-"\"-or-dquote )* '"'
//	escape      = "\" ( "r" | "n" | "t" | '"' | "\" )
//	number      = "-"? ( digits "." digits | digits )
//	binary      = "<" [A-Za-z0-9+/=]+ ">"
//	comment     = ";" ... newline  |  ";(--" ... "--)"
package wexpr
