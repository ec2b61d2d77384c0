package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	blogContainerPrefix = "site-blog-"
	pageArchivePrefix   = "site-page-"
	archiveSuffix       = ".xml.gz"
)

// isBlogContainer reports whether a directory name denotes a blog container
func isBlogContainer(name string) bool {
	return strings.HasPrefix(name, blogContainerPrefix)
}

// isPageArchive reports whether a directory name denotes a page archive
func isPageArchive(name string) bool {
	return strings.HasPrefix(name, pageArchivePrefix)
}

// archivePath returns the expected archive file inside a page directory
func archivePath(pageDir string) string {
	return filepath.Join(pageDir, filepath.Base(pageDir)+archiveSuffix)
}

// WalkArchives calls fn with the expected archive path of every page
// directory found inside a blog container under root. The archive file itself
// is not checked for existence.
func WalkArchives(root string, fn func(archive string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("reading archive root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root %s is not a directory", root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() || !isBlogContainer(d.Name()) {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}
		for _, entry := range entries {
			if !entry.IsDir() || !isPageArchive(entry.Name()) {
				continue
			}
			debugLog("found page archive %s in %s", entry.Name(), path)
			if err := fn(archivePath(filepath.Join(path, entry.Name()))); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}
