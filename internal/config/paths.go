package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds resolved absolute directories for application data. It is
// built once from PathsConfig and shared read-only afterwards.
type Paths struct {
	DataDir      string
	DownloadsDir string
	ReportsDir   string
	CacheDir     string
	LogsDir      string
}

// NewPaths resolves the configured directories against the working
// directory and creates them if missing.
func NewPaths(cfg PathsConfig, cacheDir string) (*Paths, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	p := &Paths{
		DataDir:      resolve(base, cfg.DataDir),
		DownloadsDir: resolve(base, cfg.DownloadsDir),
		ReportsDir:   resolve(base, cfg.ReportsDir),
		CacheDir:     resolve(base, cacheDir),
		LogsDir:      resolve(base, cfg.LogsDir),
	}

	for _, dir := range []string{p.DataDir, p.DownloadsDir, p.ReportsDir, p.CacheDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return p, nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetDownloadPath returns the full path for a downloaded document
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

func resolve(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
