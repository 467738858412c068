package domain

// SourceRange is the span of a reference in a module's source text.
type SourceRange struct {
	Start int
	End   int
}

// EvaluationKind classifies what a constant evaluation statically knows.
type EvaluationKind uint8

const (
	// EvalUnknown means nothing is statically known about the expression.
	EvalUnknown EvaluationKind = iota
	// EvalString means the expression is a known string constant.
	EvalString
	// EvalNumber means the expression is a known numeric constant.
	EvalNumber
	// EvalBool means the expression is a known boolean constant.
	EvalBool
	// EvalTruthy means the expression is known truthy without a concrete value.
	EvalTruthy
)

// Evaluation is a constant-evaluation result produced by the host parser's
// evaluate facility, or synthesized directly for values whose evaluation is
// known without parsing.
type Evaluation struct {
	Range       SourceRange
	Kind        EvaluationKind
	Str         string
	Num         float64
	Bool        bool
	SideEffects bool
}

// IsString reports whether the evaluation is a statically known string.
func (e *Evaluation) IsString() bool {
	return e != nil && e.Kind == EvalString
}

// NewStringEvaluation creates a known-string evaluation for the given span.
func NewStringEvaluation(s string, r SourceRange) *Evaluation {
	return &Evaluation{Range: r, Kind: EvalString, Str: s}
}

// NewTruthyEvaluation creates a side-effect-free truthy evaluation for the
// given span.
func NewTruthyEvaluation(r SourceRange) *Evaluation {
	return &Evaluation{Range: r, Kind: EvalTruthy}
}

// RuntimeRequirement names a runtime capability a replacement depends on.
type RuntimeRequirement string

const (
	// RequireFn is the module-require runtime helper itself.
	RequireFn RuntimeRequirement = "require"
	// RequireScope is the broader scope object the require helper lives in,
	// needed when the helper is referenced without being called.
	RequireScope RuntimeRequirement = "require.scope"
)

// RequireHelper is the name of the bundler's module-require runtime helper.
// Serialized values referencing it make the replacement depend on the
// corresponding runtime capability.
const RequireHelper = "__bundler_require__"

// Replacement is a constant-dependency source replacement: the reference at
// Range is rewritten to Text, declaring the listed runtime requirements.
type Replacement struct {
	Range        SourceRange
	Text         string
	Requirements []RuntimeRequirement
}
