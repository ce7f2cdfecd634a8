package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rowmut/rowmut/internal/mutagenerr"
	"github.com/rowmut/rowmut/internal/seedcodec"
)

// Report is the run manifest written alongside a mutate run so a later
// invocation can be audited: which seed produced which selection, and what
// the selector/replacer warned about along the way.
type Report struct {
	Seed            string   `yaml:"seed"`
	SeedFingerprint string   `yaml:"seedFingerprint"`
	PossibleCount   int      `yaml:"possibleCount"`
	SelectedCount   int      `yaml:"selectedCount"`
	NoMatchLines    []int    `yaml:"noMatchLines,omitempty"`
	MultiMatchLines []int    `yaml:"multiMatchLines,omitempty"`
	FreeTextNotices []string `yaml:"notices,omitempty"`
}

// NewReport builds a Report from a resolved seed and the run's final
// counts, fingerprinting the seed with SHA-256 the way the teacher's
// HashFile fingerprints file contents.
func NewReport(seed [seedcodec.Size]byte, possibleCount, selectedCount int, noMatch, multiMatch []int, freeText []string) Report {
	return Report{
		Seed:            seedcodec.Encode(seed),
		SeedFingerprint: fmt.Sprintf("%x", sha256.Sum256(seed[:])),
		PossibleCount:   possibleCount,
		SelectedCount:   selectedCount,
		NoMatchLines:    noMatch,
		MultiMatchLines: multiMatch,
		FreeTextNotices: freeText,
	}
}

// WriteReport marshals report as YAML and writes it to path.
func (a *LocalSourceAdapter) WriteReport(path string, report Report) error {
	content, err := yaml.Marshal(report)
	if err != nil {
		return mutagenerr.Wrap(mutagenerr.Internal, "failed to marshal report", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return mutagenerr.Wrap(mutagenerr.IO, "failed to write report "+mutagenerr.Sanitize(path), err)
	}

	return nil
}
