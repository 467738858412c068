package define

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.trai.ch/define/internal/codegen"
	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/define/internal/core/ports"
)

var (
	requireCallRe = regexp.MustCompile(`\b` + domain.RequireHelper + `\s*\(`)
	requireRefRe  = regexp.MustCompile(`\b` + domain.RequireHelper + `\b`)
)

// requirementsFor declares the runtime capabilities serialized text depends
// on: the require helper in call position needs the helper itself, a bare
// reference needs the surrounding require scope.
func requirementsFor(text string) []domain.RuntimeRequirement {
	switch {
	case requireCallRe.MatchString(text):
		return []domain.RuntimeRequirement{domain.RequireFn}
	case requireRefRe.MatchString(text):
		return []domain.RuntimeRequirement{domain.RequireScope}
	default:
		return nil
	}
}

// registerLeaf registers the substitution behaviors for one flattened key.
// originalKey keeps any "typeof " prefix and is what run state is recorded
// under; the hooks themselves are registered for the bare identifier path.
func (e *Engine) registerLeaf(p ports.Parser, originalKey string, value any) {
	key := originalKey
	typeofOnly := strings.HasPrefix(key, typeofPrefix)
	if typeofOnly {
		key = strings.TrimPrefix(key, typeofPrefix)
	}

	approvePrefixes(p, key)

	if !typeofOnly {
		p.ApproveRename(key)
		p.OnIdentifier(key, e.identifierHandler(originalKey, value))
		p.OnExpression(key, e.expressionHandler(originalKey, value))
	}
	p.OnTypeof(key, e.typeofEvalHandler(originalKey, value, typeofOnly))
	p.OnTypeofExpression(key, e.typeofSubstHandler(originalKey, value, typeofOnly))
}

// registerObject registers the behaviors for a composite key addressing a
// nested mapping. Its typeof is always "object", its identifier evaluation
// is truthy with no side effects, and its expression substitution inlines
// the entire subtree as one literal.
func (e *Engine) registerObject(p ports.Parser, key string, tree map[string]any) {
	approvePrefixes(p, key)
	p.ApproveRename(key)

	p.OnIdentifier(key, func(pc *ports.ParseContext) (*domain.Evaluation, error) {
		return domain.NewTruthyEvaluation(pc.Range), nil
	})

	p.OnTypeof(key, func(pc *ports.ParseContext) (*domain.Evaluation, error) {
		return domain.NewStringEvaluation("object", pc.Range), nil
	})

	p.OnExpression(key, e.expressionHandler(key, tree))

	p.OnTypeofExpression(key, func(pc *ports.ParseContext) (*domain.Replacement, error) {
		return &domain.Replacement{Range: pc.Range, Text: `"object"`}, nil
	})
}

// identifierHandler serializes the value and asks the host to evaluate the
// text at the reference's position. Re-entrancy is guarded per key: a
// definition whose text evaluates back into itself resolves to no result on
// the inner call.
func (e *Engine) identifierHandler(originalKey string, value any) ports.EvalHandler {
	return func(pc *ports.ParseContext) (*domain.Evaluation, error) {
		if !e.enter(originalKey, kindIdentifier) {
			return nil, nil
		}
		defer e.leave(originalKey, kindIdentifier)

		text, err := e.ser.ToCode(value, domain.ASIUnneeded, pc.Module)
		if err != nil {
			return nil, err
		}
		ev := pc.Evaluate(text)
		if ev == nil {
			return nil, nil
		}
		ev.Range = pc.Range
		e.record(originalKey, text, pc.Module)
		return ev, nil
	}
}

// expressionHandler produces the constant-dependency replacement for the key
// used as a sub-expression, with ASI safety supplied by the host for the
// reference's position. The value is serialized exactly once per firing:
// the raw text is what run state records, and position protection is
// applied textually, so runtime values resolve a single time.
func (e *Engine) expressionHandler(originalKey string, value any) ports.SubstHandler {
	return func(pc *ports.ParseContext) (*domain.Replacement, error) {
		text, selfDelimiting, err := e.ser.Serialize(value, pc.Module)
		if err != nil {
			return nil, err
		}
		e.record(originalKey, text, pc.Module)

		wrapped := codegen.WrapASI(text, selfDelimiting, pc.ASISafety)
		return &domain.Replacement{
			Range:        pc.Range,
			Text:         wrapped,
			Requirements: requirementsFor(wrapped),
		}, nil
	}
}

// typeofEvalHandler evaluates `typeof (value)`. For typeof-only keys the
// configured value already is the typeof text. Guarded independently from
// identifier evaluation.
func (e *Engine) typeofEvalHandler(originalKey string, value any, typeofOnly bool) ports.EvalHandler {
	return func(pc *ports.ParseContext) (*domain.Evaluation, error) {
		if !e.enter(originalKey, kindTypeof) {
			return nil, nil
		}
		defer e.leave(originalKey, kindTypeof)

		text, err := e.ser.ToCode(value, domain.ASIUnneeded, pc.Module)
		if err != nil {
			return nil, err
		}
		typeofText := text
		if !typeofOnly {
			typeofText = "typeof (" + text + ")"
		}
		ev := pc.Evaluate(typeofText)
		if ev == nil {
			return nil, nil
		}
		ev.Range = pc.Range
		e.record(originalKey, text, pc.Module)
		return ev, nil
	}
}

// typeofSubstHandler replaces a typeof expression only when its result is a
// statically known string; otherwise typeof stays unresolved and falls
// through to the runtime.
func (e *Engine) typeofSubstHandler(originalKey string, value any, typeofOnly bool) ports.SubstHandler {
	return func(pc *ports.ParseContext) (*domain.Replacement, error) {
		if !e.enter(originalKey, kindTypeof) {
			return nil, nil
		}
		defer e.leave(originalKey, kindTypeof)

		text, err := e.ser.ToCode(value, domain.ASIUnneeded, pc.Module)
		if err != nil {
			return nil, err
		}
		typeofText := text
		if !typeofOnly {
			typeofText = "typeof (" + text + ")"
		}
		ev := pc.Evaluate(typeofText)
		if !ev.IsString() {
			return nil, nil
		}
		e.record(originalKey, text, pc.Module)

		quoted, err := json.Marshal(ev.Str)
		if err != nil {
			return nil, err
		}
		return &domain.Replacement{Range: pc.Range, Text: string(quoted)}, nil
	}
}
