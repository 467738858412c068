package define

import (
	"sort"
	"strings"

	"go.trai.ch/define/internal/core/ports"
)

// walk traverses the definition tree. Nested mappings recurse with an
// extended prefix and additionally register a composite object entry for the
// joined key; everything else registers a leaf entry. Keys are visited in
// sorted order so registration is deterministic.
func (e *Engine) walk(p ports.Parser, prefix string, tree map[string]any) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := tree[key]
		fullKey := prefix + key
		if sub, ok := value.(map[string]any); ok {
			e.walk(p, fullKey+".", sub)
			e.registerObject(p, fullKey, sub)
			continue
		}
		e.registerLeaf(p, fullKey, value)
	}
}

// approvePrefixes registers rename approval for every strict dot-prefix of a
// key, so a downstream renamer leaves the synthetic namespace segments
// alone.
func approvePrefixes(p ports.Parser, key string) {
	segments := strings.Split(key, ".")
	for i := 1; i < len(segments); i++ {
		p.ApproveRename(strings.Join(segments[:i], "."))
	}
}
