package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/bindgen/errors"
)

// CheckResult holds the result of a regeneration check
type CheckResult struct {
	UpToDate    bool
	Differences []string // artifact names that differ or are missing
}

// Check regenerates every configured artifact into a temporary directory
// and compares it byte for byte with what outDir holds.
func (g *Generator) Check(outDir string) (*CheckResult, error) {
	tempDir, err := os.MkdirTemp("", "bindgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := g.All(tempDir); err != nil {
		return nil, err
	}
	return CompareDirectories(tempDir, outDir)
}

// CompareDirectories compares every file of generatedDir with the file of
// the same relative path in existingDir. Files only present in existingDir
// are not considered: the output directory may hold other artifacts.
func CompareDirectories(generatedDir, existingDir string) (*CheckResult, error) {
	var diffs []string
	err := filepath.Walk(generatedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}

		different, err := filesAreDifferent(path, filepath.Join(existingDir, relPath))
		switch {
		case os.IsNotExist(errors.UnwrapAll(err)):
			diffs = append(diffs, relPath+" (missing)")
		case err != nil:
			diffs = append(diffs, relPath+" (error: "+err.Error()+")")
		case different:
			diffs = append(diffs, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", generatedDir)
	}

	sort.Strings(diffs)
	return &CheckResult{UpToDate: len(diffs) == 0, Differences: diffs}, nil
}

// filesAreDifferent compares two files byte for byte. The artifacts carry
// no timestamps, so nothing is filtered.
func filesAreDifferent(file1, file2 string) (bool, error) {
	content1, err := os.ReadFile(file1)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file1)
	}

	content2, err := os.ReadFile(file2)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", file2)
	}

	return !bytes.Equal(content1, content2), nil
}
