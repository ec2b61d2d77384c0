package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
}

func collectArchives(t *testing.T, root string) []string {
	t.Helper()
	var found []string
	err := WalkArchives(root, func(archive string) error {
		rel, err := filepath.Rel(root, archive)
		if err != nil {
			return err
		}
		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("WalkArchives() error = %v", err)
	}
	sort.Strings(found)
	return found
}

func TestWalkArchives(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root,
		"site-blog-travel/site-page-lisbon",
		"site-blog-travel/site-page-porto",
		"site-blog-travel/images",
		"Site/nested/site-blog-food/site-page-bread",
		"site-page-orphan",
		"site-blog-empty",
		"other/site-page-outside",
	)
	// Files with the page prefix are not page directories.
	if err := os.WriteFile(filepath.Join(root, "site-blog-travel", "site-page-file"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	got := collectArchives(t, root)
	want := []string{
		"Site/nested/site-blog-food/site-page-bread/site-page-bread.xml.gz",
		"site-blog-travel/site-page-lisbon/site-page-lisbon.xml.gz",
		"site-blog-travel/site-page-porto/site-page-porto.xml.gz",
	}

	if len(got) != len(want) {
		t.Fatalf("WalkArchives() found %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("archive %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkArchivesEmptyContainer(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "site-blog-empty")

	if got := collectArchives(t, root); len(got) != 0 {
		t.Errorf("WalkArchives() found %v, want nothing", got)
	}
}

func TestWalkArchivesMissingRoot(t *testing.T) {
	err := WalkArchives(filepath.Join(t.TempDir(), "missing"), func(string) error {
		t.Error("callback called for missing root")
		return nil
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WalkArchives() error = %v, want not exist", err)
	}
}

func TestWalkArchivesRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := WalkArchives(file, func(string) error { return nil }); err == nil {
		t.Error("WalkArchives() expected error for a file root")
	}
}

func TestWalkArchivesCallbackError(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "site-blog-a/site-page-1", "site-blog-a/site-page-2")

	boom := errors.New("boom")
	calls := 0
	err := WalkArchives(root, func(string) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("WalkArchives() error = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestWalkArchivesStop(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "site-blog-a/site-page-1", "site-blog-a/site-page-2")

	calls := 0
	err := WalkArchives(root, func(string) error {
		calls++
		return ErrStopWalk
	})
	if err != nil {
		t.Errorf("WalkArchives() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("callback called %d times, want 1", calls)
	}
}

func TestNamePredicates(t *testing.T) {
	tests := []struct {
		name      string
		container bool
		page      bool
	}{
		{"site-blog-1", true, false},
		{"site-page-1", false, true},
		{"site-blog", false, false},
		{"Site-Blog-1", false, false},
		{"xsite-page-1", false, false},
	}

	for _, tt := range tests {
		if got := isBlogContainer(tt.name); got != tt.container {
			t.Errorf("isBlogContainer(%q) = %v, want %v", tt.name, got, tt.container)
		}
		if got := isPageArchive(tt.name); got != tt.page {
			t.Errorf("isPageArchive(%q) = %v, want %v", tt.name, got, tt.page)
		}
	}
}
