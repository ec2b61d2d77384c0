// renderer.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Renderer turns page archives into HTML comment fragments
type Renderer struct {
	settings *Settings
	policy   *bluemonday.Policy
}

// NewRenderer creates a renderer for the given settings
func NewRenderer(settings *Settings) *Renderer {
	r := &Renderer{settings: settings}
	if settings.SanitizeBodies {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Run renders every page archive under root. With fail-fast disabled a
// failing archive is logged and recorded and the walk continues; otherwise
// the first failure is returned.
func (r *Renderer) Run(root string) ([]PageResult, error) {
	var results []PageResult

	log.Printf("Scanning %s...", root)
	err := WalkArchives(root, func(archive string) error {
		log.Printf("[%d] Rendering: %s", len(results)+1, archive)
		result := r.RenderArchive(archive)
		results = append(results, result)

		if result.Status == StatusSuccess {
			log.Printf("✓ Wrote: %s (%d comments)", result.Filename, result.Comments)
			return nil
		}
		log.Printf("✗ Failed %s: %v", result.Archive, result.Error)
		if r.settings.FailFast {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return results, err
	}

	return results, nil
}

// RenderArchive reads one archive and writes its HTML file
func (r *Renderer) RenderArchive(archive string) PageResult {
	doc, err := ReadArchive(archive)
	if err != nil {
		return PageResult{
			Archive: archive,
			Status:  StatusError,
			Error:   err,
		}
	}

	filename, err := r.outputFilename(doc.PageName)
	if err != nil {
		return PageResult{
			Archive:  archive,
			PageName: doc.PageName,
			Status:   StatusError,
			Error:    &ArchiveError{Path: archive, Err: err},
		}
	}

	if err := r.writePage(filename, doc); err != nil {
		return PageResult{
			Archive:  archive,
			PageName: doc.PageName,
			Filename: filename,
			Status:   StatusError,
			Error:    &ArchiveError{Path: archive, Err: fmt.Errorf("writing %s: %w", filename, err)},
		}
	}

	return PageResult{
		Archive:  archive,
		PageName: doc.PageName,
		Filename: filename,
		Comments: len(doc.Comments),
		Status:   StatusSuccess,
	}
}

// outputFilename derives the HTML file path for a page. Path separators are
// replaced so the file always lands directly in the output directory.
func (r *Renderer) outputFilename(pageName string) (string, error) {
	name := strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', 0:
			return '-'
		}
		return c
	}, pageName)

	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrUnsafePageName, pageName)
	}
	return filepath.Join(r.settings.OutputDirectory, name+".html"), nil
}

// writePage writes the page header, every comment and the footer to filename.
// The file is closed on every path.
func (r *Renderer) writePage(filename string, doc *PageDocument) (err error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(pageHeader); err != nil {
		return err
	}
	for _, comment := range doc.Comments {
		author := comment.Author
		if r.settings.NormalizeText {
			author = NormalizeText(author)
		}
		author = EncodeEntities(author)
		date := EncodeEntities(FormatDate(ConvertDate(comment.ReferenceTimestamp)))
		if err := WriteComment(w, author, date, r.commentBody(comment.Body)); err != nil {
			return err
		}
	}
	if _, err := w.WriteString(pageFooter); err != nil {
		return err
	}
	return w.Flush()
}

func (r *Renderer) commentBody(body string) string {
	if r.policy == nil {
		return body
	}
	return r.policy.Sanitize(body)
}

// Summarize counts results by status
func Summarize(results []PageResult) (succeeded, failed int) {
	for _, result := range results {
		if result.Status == StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// FailedErrors joins the errors of every failed result
func FailedErrors(results []PageResult) error {
	var errs []error
	for _, result := range results {
		if result.Error != nil {
			errs = append(errs, result.Error)
		}
	}
	return errors.Join(errs...)
}
