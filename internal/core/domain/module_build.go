package domain

import (
	"path/filepath"
	"sort"
	"sync"
)

// ModuleBuild is the per-module build metadata mutated while a module is
// compiled: the cacheable flag and the file-dependency set an external cache
// honors when deciding whether the module's build result may be reused.
type ModuleBuild struct {
	// Identifier is the resolved absolute path of the module.
	Identifier string
	// Dir is the directory the module's relative requests resolve against.
	Dir string

	mu        sync.Mutex
	cacheable bool
	fileDeps  map[string]struct{}
}

// NewModuleBuild creates build metadata for the module at the given resolved
// path. Modules start out cacheable with no file dependencies.
func NewModuleBuild(identifier string) *ModuleBuild {
	return &ModuleBuild{
		Identifier: identifier,
		Dir:        filepath.Dir(identifier),
		cacheable:  true,
		fileDeps:   make(map[string]struct{}),
	}
}

// MarkUncacheable flags the module so its build result is never served from
// cache.
func (m *ModuleBuild) MarkUncacheable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheable = false
}

// Cacheable reports whether the module's build result may be cached.
func (m *ModuleBuild) Cacheable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheable
}

// AddFileDependency records a path whose modification invalidates the
// module's cached build result. Adding the same path twice is harmless.
func (m *ModuleBuild) AddFileDependency(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fileDeps[path] = struct{}{}
}

// FileDependencies returns the recorded dependency paths in sorted order.
func (m *ModuleBuild) FileDependencies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	deps := make([]string, 0, len(m.fileDeps))
	for p := range m.fileDeps {
		deps = append(deps, p)
	}
	sort.Strings(deps)
	return deps
}
