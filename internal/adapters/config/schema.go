package config

// Definefile represents the structure of the define.yaml configuration file.
// Values under define are code fragments, not data: strings are substituted
// verbatim, so a string constant must be written with its quotes.
type Definefile struct {
	Define map[string]any `yaml:"define"`
}
