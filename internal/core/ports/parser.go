package ports

import "go.trai.ch/define/internal/core/domain"

// ParseContext carries the state of one identifier reference encountered
// while the host parser compiles a module.
type ParseContext struct {
	// Module is the build metadata of the module being compiled.
	Module *domain.ModuleBuild
	// Range is the source span of the reference.
	Range domain.SourceRange
	// ASISafety describes whether the reference's position is a statement
	// boundary requiring protection when text is substituted there.
	ASISafety domain.ASISafety
	// Evaluate asks the host parser to constant-evaluate a source fragment at
	// the position of the current reference. It may re-enter registered
	// handlers for identifiers appearing in the fragment. A nil result means
	// the fragment could not be evaluated.
	Evaluate func(source string) *domain.Evaluation
}

// EvalHandler produces a constant-evaluation result for a reference.
// Returning (nil, nil) declines the reference so the host keeps trying
// alternative handlers.
type EvalHandler func(pc *ParseContext) (*domain.Evaluation, error)

// SubstHandler produces a source replacement for a reference. Returning
// (nil, nil) declines the reference.
type SubstHandler func(pc *ParseContext) (*domain.Replacement, error)

// Parser is the identifier-interception facility a host parser offers:
// per-key-path hook registration fired as references are encountered during
// module compilation.
type Parser interface {
	// ApproveRename declares the identifier path safe to treat as a global
	// value reference rather than rename or shadow it in scoping analysis.
	ApproveRename(keyPath string)
	// OnIdentifier registers an evaluation handler for bare references.
	OnIdentifier(keyPath string, h EvalHandler)
	// OnTypeof registers an evaluation handler for typeof references.
	OnTypeof(keyPath string, h EvalHandler)
	// OnExpression registers a substitution handler for the key used as a
	// sub-expression.
	OnExpression(keyPath string, h SubstHandler)
	// OnTypeofExpression registers a substitution handler for typeof
	// expressions over the key.
	OnTypeofExpression(keyPath string, h SubstHandler)
}
