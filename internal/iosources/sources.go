package iosources

import (
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/sources"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.Registry, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	reg, err := sources.LoadRegistry(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return reg, nil
}

// Select loads the registry and picks the dataset the config names,
// falling back to the registry default when the name is empty.
func Select(cfg *config.Config) (*sources.DataSource, error) {
	reg, err := New(cfg).Load()
	if err != nil {
		return nil, err
	}
	ds, err := reg.Lookup(cfg.Source.Name)
	if err != nil {
		return nil, SourceNotFoundError(cfg.Source.Name, err)
	}
	return ds, nil
}
