package sources

import (
	"fmt"
	"net/url"
)

// Validate checks the registry for errors.
func (r *Registry) Validate() error {
	if len(r.DataSources) == 0 {
		return fmt.Errorf("no data sources specified in configuration")
	}

	seen := make(map[string]struct{})
	defaults := 0
	for i := range r.DataSources {
		d := &r.DataSources[i]
		if err := d.Validate(); err != nil {
			return fmt.Errorf("data source %d: %w", i+1, err)
		}
		if _, ok := seen[d.Name]; ok {
			return fmt.Errorf("data source %d: duplicate name '%s'", i+1, d.Name)
		}
		seen[d.Name] = struct{}{}
		if d.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("more than one data source is marked as default")
	}

	return nil
}

// Validate checks a single data source configuration.
func (d *DataSource) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.URL == "" {
		return fmt.Errorf("url is required")
	}
	if !IsValidURL(d.URL) {
		return fmt.Errorf("invalid url: %s", d.URL)
	}
	return nil
}

// Lookup finds a dataset by name. An empty name returns the default
// dataset: the entry marked default, or the first entry.
func (r *Registry) Lookup(name string) (*DataSource, error) {
	if name == "" {
		for i := range r.DataSources {
			if r.DataSources[i].Default {
				return &r.DataSources[i], nil
			}
		}
		if len(r.DataSources) > 0 {
			return &r.DataSources[0], nil
		}
		return nil, fmt.Errorf("registry has no data sources")
	}

	for i := range r.DataSources {
		if r.DataSources[i].Name == name {
			return &r.DataSources[i], nil
		}
	}
	return nil, fmt.Errorf("data source '%s' is not in the registry", name)
}

// IsValidURL checks if a string is a valid URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
