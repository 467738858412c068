package ports

import "context"

// ResolveRequest is one module-resolution request.
type ResolveRequest struct {
	// IssuerDir is the directory of the requesting module.
	IssuerDir string
	// Specifier is the requested module path, relative or absolute.
	Specifier string
	// BypassCache forces a genuine resolution instead of serving the
	// resolver's cached result.
	BypassCache bool
}

// ModuleResolver resolves a request to the absolute path of a module. The
// host resolver exposes its cache-lookup step through this interface so the
// resolution gate can wrap it.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (string, error)
}
