package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes generated files. Each file goes to its package
// directory unless outputDir is set, in which case all files go there.
// Files whose content is unchanged are not rewritten.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	for _, file := range files {
		dir := file.Dir
		if outputDir != "" {
			dir = outputDir
		}

		if dir == "" {
			return fmt.Errorf("no output directory for %s", file.Filename)
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(dir, file.Filename)

		if old, err := os.ReadFile(outputPath); err == nil && bytes.Equal(old, file.Content) {
			log.Debugf("unchanged: %s", outputPath)
			continue
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		log.Infof("wrote %s", outputPath)
	}

	return nil
}

// IsGenerated reports whether a file starts with the generated-code header,
// so it is safe to overwrite.
func IsGenerated(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	return bytes.HasPrefix(data, []byte(Header)), nil
}
