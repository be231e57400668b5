// Package sources defines the dataset registry loaded from sources.yaml.
//
// The registry lists the downloadable dispatch databases the pipeline can
// provision. Users edit sources.yaml to add datasets; the default file
// ships with the single production dispatch database.
package sources

// Sources loads the dataset registry.
type Sources interface {
	Load() (*Registry, error)
}

// Registry represents the complete sources.yaml configuration file.
type Registry struct {
	// DataSources is the list of downloadable dispatch databases.
	DataSources []DataSource `yaml:"data_sources"`
}

// DataSource describes one downloadable dispatch database file.
type DataSource struct {
	// Name identifies the dataset. Commands select it with --source,
	// config with source.name.
	Name string `yaml:"name"`

	// URL is the direct download link for the database file.
	URL string `yaml:"url"`

	// File is the local filename for the cached copy inside the cache
	// directory. Defaults to "<name>.sqlite" when empty.
	File string `yaml:"file,omitempty"`

	// Default marks the dataset used when no name is given. When no
	// entry is marked, the first entry serves as default.
	Default bool `yaml:"default,omitempty"`
}

// LocalFile returns the filename of the cached copy.
func (d DataSource) LocalFile() string {
	if d.File != "" {
		return d.File
	}
	return d.Name + ".sqlite"
}
