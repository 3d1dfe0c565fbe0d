package app

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper locates report files
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectReportFiles expands paths into report files. Files named directly
// are always kept; directories are searched for base names matching
// reportPatterns, skipping anything matched by the gitignore-style
// excludePatterns relative to the searched directory.
func (h *FileHelper) CollectReportFiles(paths []string, recursive bool, reportPatterns, excludePatterns []string) ([]string, error) {
	excludes := ignore.CompileIgnoreLines(excludePatterns...)
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found, err := h.searchDirectory(path, recursive, reportPatterns, excludes)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

// searchDirectory walks root in lexical order
func (h *FileHelper) searchDirectory(root string, recursive bool, reportPatterns []string, excludes *ignore.GitIgnore) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !recursive || excludes.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if excludes.MatchesPath(rel) {
			return nil
		}
		if h.IsReportFile(path, reportPatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}

	return files, nil
}

// IsReportFile reports whether the base name of path matches a report pattern
func (h *FileHelper) IsReportFile(path string, reportPatterns []string) bool {
	name := filepath.Base(path)
	for _, pattern := range reportPatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ResolveReportPaths returns paths unchanged when they all name existing
// files, otherwise collects report files from them
func ResolveReportPaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	reportPatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectReportFiles(paths, recursive, reportPatterns, excludePatterns)
}
