// Package codegen turns definition values into source-literal text.
package codegen

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"go.trai.ch/define/internal/core/domain"
	"go.trai.ch/zerr"
)

// Serializer converts code values to source text. It is deterministic and
// side-effect-free except through runtime value resolution, which mutates the
// consuming module's build metadata.
type Serializer struct {
	// BigIntLiterals reports whether the target runtime can evaluate bigint
	// literal suffixes. When false, big integers serialize to a constructor
	// call taking the decimal string.
	BigIntLiterals bool
}

// ToCode serializes value into source text, applying the requested ASI
// safety at the top level only. module may be nil for recomputation outside
// any module compilation; runtime values then resolve without metadata side
// effects.
func (s *Serializer) ToCode(value any, asi domain.ASISafety, module *domain.ModuleBuild) (string, error) {
	text, selfDelimiting, err := s.code(value, module)
	if err != nil {
		return "", err
	}
	return WrapASI(text, selfDelimiting, asi), nil
}

// Serialize converts value into raw source text without position
// protection, additionally reporting whether the text is self-delimiting.
// Callers needing both the raw text and a position-protected form serialize
// once and wrap with WrapASI, so runtime values resolve a single time.
func (s *Serializer) Serialize(value any, module *domain.ModuleBuild) (string, bool, error) {
	return s.code(value, module)
}

// WrapASI applies statement-position protection to serialized text. It is a
// pure function of the text and its self-delimiting flag.
func WrapASI(text string, selfDelimiting bool, asi domain.ASISafety) string {
	switch asi {
	case domain.ASIUnneeded:
		return text
	case domain.ASISafe:
		if selfDelimiting {
			return text
		}
		return "(" + text + ")"
	case domain.ASIUnsafe:
		if selfDelimiting {
			return ";" + text
		}
		return ";(" + text + ")"
	default:
		return "Object(" + text + ")"
	}
}

// code serializes a value without position protection. The second result
// reports whether the text is self-delimiting (an array literal), which the
// top-level ASI wrapping relies on.
func (s *Serializer) code(value any, module *domain.ModuleBuild) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "null", false, nil
	case bool:
		return strconv.FormatBool(v), false, nil
	case string:
		return v, false, nil
	case int:
		return strconv.Itoa(v), false, nil
	case int64:
		return strconv.FormatInt(v, 10), false, nil
	case uint64:
		return strconv.FormatUint(v, 10), false, nil
	case float64:
		return formatNumber(v), false, nil
	case float32:
		return formatNumber(float64(v)), false, nil
	case *big.Int:
		if s.BigIntLiterals {
			return v.String() + "n", false, nil
		}
		return `BigInt("` + v.String() + `")`, false, nil
	case domain.Regexp:
		return v.String(), false, nil
	case domain.Code:
		return "(" + string(v) + ")", false, nil
	case *domain.RuntimeValue:
		resolved, err := v.Resolve(module)
		if err != nil {
			return "", false, zerr.Wrap(err, "failed to resolve runtime value")
		}
		return s.code(resolved, module)
	case []any:
		return s.arrayCode(v, module)
	case map[string]any:
		return s.objectCode(v, module)
	default:
		if value == domain.Undefined {
			return "undefined", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(domain.ErrUnsupportedValue, "failed to serialize value"), "type", fmt.Sprintf("%T", value))
	}
}

func (s *Serializer) arrayCode(values []any, module *domain.ModuleBuild) (string, bool, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		text, _, err := s.code(el, module)
		if err != nil {
			return "", false, err
		}
		b.WriteString(text)
	}
	b.WriteByte(']')
	return b.String(), true, nil
}

func (s *Serializer) objectCode(values map[string]any, module *domain.ModuleBuild) (string, bool, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		quoted, err := json.Marshal(k)
		if err != nil {
			return "", false, zerr.Wrap(err, "failed to quote object key")
		}
		b.Write(quoted)
		b.WriteByte(':')
		text, _, err := s.code(values[k], module)
		if err != nil {
			return "", false, err
		}
		b.WriteString(text)
	}
	b.WriteByte('}')
	return b.String(), false, nil
}

// formatNumber renders a float the way source numeric literals read.
// Negative zero must stay distinguishable from positive zero.
func formatNumber(f float64) string {
	if f == 0 && math.Signbit(f) {
		return "-0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

