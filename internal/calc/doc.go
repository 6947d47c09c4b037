// Package calc is a small arithmetic language built on the scanner, parser
// and source packages.
//
// Grammar:
//
//	program = [ stmt { ";" stmt } ] [ ";" ]
//	stmt    = "let" ident "=" expr | expr
//	expr    = primary { op expr }      (Pratt: "+" "-" bind looser than "*" "/")
//	primary = number | ident | "(" expr ")"
//
// Numbers are unsigned 64-bit decimals and may use "_" between digits.
// "#" and "//" start line comments. Values are uint64; overflow, underflow,
// division by zero and unknown variables are evaluation errors.
package calc
