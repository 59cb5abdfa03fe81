package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expogrid/hallplan/pkg/pipeline"
)

// basePath derives the base output path for artifact files.
// If output is empty, the base comes from the input file name, or the app
// name when there is no input. A known format extension on output is
// stripped so "plan.svg" and "plan" behave the same.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per rendered format and prints each path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) error {
	base := basePath(output, input)
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
