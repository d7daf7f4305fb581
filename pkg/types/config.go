package types

// TangleConfig holds settings for the tangle stage.
type TangleConfig struct {
	// OutputDir is the directory output filenames resolve against
	// (default "."). Filenames may carry their own subdirectories.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// CatalogConfig holds settings for the output catalog.
type CatalogConfig struct {
	// Enabled turns on catalog recording after successful tangle runs.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the catalog database location (default ".tangle-engine/catalog.db").
	Path string `json:"path" yaml:"path"`
}

// DefaultCatalogPath is the catalog database location used when none is
// configured.
const DefaultCatalogPath = ".tangle-engine/catalog.db"

// Config groups all settings for the CLI. Keys in tangle-engine.yaml
// mirror this structure.
type Config struct {
	Tangle  TangleConfig  `json:"tangle" yaml:"tangle"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
