// internal/runutil/runutil.go
package runutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"cfastq/internal/errs"
	"cfastq/pkg/api"
)

// ValidateChunking checks the chunk size against the output target.
// Rules:
//   - negative sizes are rejected
//   - chunking needs an output prefix; stdout ("" or "-") cannot rotate
func ValidateChunking(chunkSize int, output string) error {
	if chunkSize < 0 {
		return errs.Configf("chunk size must be >= 0, got %d", chunkSize)
	}
	if chunkSize > 0 && (output == "" || output == "-") {
		return errs.Configf("-c cannot be specified when using stdout")
	}
	return nil
}

// outputSuffixes are stripped, repeatedly, when deriving a tag from an
// output path ("run1.fastq.gz" -> "run1").
var outputSuffixes = []string{".gz", ".fastq", ".fq"}

// ExperimentTag resolves the tag written into every CID field: the explicit
// value if set, else the output base name without FASTQ suffixes, else
// api.DefaultExperiment.
func ExperimentTag(explicit, output string) (string, error) {
	tag := explicit
	if tag == "" && output != "" && output != "-" {
		tag = filepath.Base(output)
		for trimmed := true; trimmed; {
			trimmed = false
			for _, suf := range outputSuffixes {
				if len(tag) > len(suf) && strings.HasSuffix(tag, suf) {
					tag = strings.TrimSuffix(tag, suf)
					trimmed = true
				}
			}
		}
	}
	if tag == "" {
		return api.DefaultExperiment, nil
	}
	if strings.Contains(tag, api.Sep) {
		return "", errs.Configf("experiment tag %q must not contain %q", tag, api.Sep)
	}
	if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return "", errs.Configf("experiment tag %q must not contain whitespace", tag)
	}
	return tag, nil
}
