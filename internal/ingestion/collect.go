package ingestion

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
)

// Collector resolves CLI and upload inputs into document sources.
type Collector struct {
	Registry *Registry
	Logger   *zap.Logger
}

// NewCollector returns a Collector over reg.
func NewCollector(reg *Registry, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Registry: reg, Logger: logger}
}

// CollectPaths expands files, directories (walked in lexical order) and ZIP
// archives into sources. Unsupported files are skipped and reported by name.
func (c *Collector) CollectPaths(paths []string) (sources []types.Source, skipped []string, err error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			got, skip, err := c.collectFile(p)
			if err != nil {
				return nil, nil, err
			}
			sources = append(sources, got...)
			skipped = append(skipped, skip...)
			continue
		}

		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			got, skip, err := c.collectFile(path)
			if err != nil {
				return err
			}
			sources = append(sources, got...)
			skipped = append(skipped, skip...)
			return nil
		})
		if walkErr != nil {
			return nil, nil, fmt.Errorf("failed to walk %s: %w", p, walkErr)
		}
	}
	return sources, skipped, nil
}

// CollectUpload turns one uploaded file into sources, expanding archives.
func (c *Collector) CollectUpload(name string, data []byte) (sources []types.Source, skipped []string, err error) {
	if IsArchive(name) {
		return c.expand(name, data)
	}
	if !c.Registry.Supports(name) {
		c.Logger.Debug("skipping unsupported upload", zap.String("name", name))
		return nil, []string{name}, nil
	}
	return []types.Source{{Name: name, Data: data}}, nil, nil
}

func (c *Collector) collectFile(path string) ([]types.Source, []string, error) {
	name := filepath.Base(path)
	if IsArchive(name) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return c.expand(path, data)
	}
	if !c.Registry.Supports(name) {
		c.Logger.Debug("skipping unsupported file", zap.String("path", path))
		return nil, []string{path}, nil
	}
	return []types.Source{{Name: name, Path: path}}, nil, nil
}

func (c *Collector) expand(name string, data []byte) ([]types.Source, []string, error) {
	var skipped []string
	sources, err := ExpandArchive(name, data, func(entry string) bool {
		if c.Registry.Supports(entry) {
			return true
		}
		skipped = append(skipped, name+"!"+entry)
		return false
	})
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("expanded archive",
		zap.String("archive", name),
		zap.Int("documents", len(sources)),
		zap.Int("skipped", len(skipped)))
	return sources, skipped, nil
}
