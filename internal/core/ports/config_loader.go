package ports

// ConfigLoader defines the interface for loading the define configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns the definition tree.
	Load(cwd string) (map[string]any, error)
}
