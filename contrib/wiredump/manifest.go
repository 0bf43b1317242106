package wiredump

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Manifest describes a finished decode run and is written alongside file output
type Manifest struct {
	// File information
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`

	// Input the records were decoded from
	Source string `json:"source"`

	Summary Summary `json:"summary"`

	// Checksum for integrity
	SHA256 string `json:"sha256,omitempty"`
}

// Validate validates the manifest fields for consistency and completeness
func (m *Manifest) Validate() error {
	if m.Format != FormatJSON && m.Format != FormatCBOR {
		return fmt.Errorf("invalid manifest format: %s", m.Format)
	}
	if m.Filename == "" {
		return fmt.Errorf("manifest missing filename")
	}
	if m.Summary.Records() < 0 || m.Summary.Skipped < 0 || m.Summary.Errors < 0 {
		return fmt.Errorf("manifest has negative counters")
	}
	return nil
}

// WriteManifest writes a manifest file alongside the output
func WriteManifest(outputPath string, manifest *Manifest) error {
	manifestPath := outputPath + ".manifest.json"

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return os.WriteFile(manifestPath, data, 0600)
}

// ReadManifest reads the manifest written for outputPath
func ReadManifest(outputPath string) (*Manifest, error) {
	manifestPath := outputPath + ".manifest.json"

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest not found for %s", outputPath)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &manifest, nil
}
