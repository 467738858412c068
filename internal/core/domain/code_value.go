package domain

// A code value is any Go value the serializer knows how to turn into source
// text: nil, Undefined, booleans, numerics (including *big.Int), strings
// (treated as raw code fragments, not quoted), Regexp, Code, *RuntimeValue,
// and nested []any / map[string]any structures thereof.

// undefinedValue is the type of the Undefined sentinel.
type undefinedValue struct{}

// Undefined serializes to the `undefined` literal. A plain nil serializes to
// `null`; the two must stay distinguishable in definition trees.
var Undefined = undefinedValue{}

// Regexp is a regular-expression literal, serialized as /Source/Flags.
type Regexp struct {
	Source string
	Flags  string
}

// String returns the literal textual form of the regular expression.
func (r Regexp) String() string {
	return "/" + r.Source + "/" + r.Flags
}

// Code is a function-like code fragment. It is serialized wrapped in
// parentheses so it stays a valid expression in any syntactic position.
type Code string
