package domain

// ASISafety describes whether serialized text is safe against
// automatic-semicolon-insertion hazards at its insertion point.
type ASISafety int8

const (
	// ASIUnneeded emits the raw text; the insertion point needs no protection.
	ASIUnneeded ASISafety = iota
	// ASISafe wraps non-array results in parentheses. Arrays are
	// self-delimiting and emitted raw.
	ASISafe
	// ASIUnsafe prefixes a semicolon, guarding against a previous statement
	// that lacks a terminator.
	ASIUnsafe
	// ASIUnknown wraps the text in an Object(...) boxing call, which is valid
	// in any syntactic position.
	ASIUnknown
)
