package main

import (
	"fmt"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Lister prints a Markdown summary of every page archive
type Lister struct {
	converter *md.Converter
	out       io.Writer
}

// NewLister creates a lister writing to out
func NewLister(out io.Writer) *Lister {
	return &Lister{
		converter: md.NewConverter("", true, nil),
		out:       out,
	}
}

// List walks root and writes one section per page. Unreadable archives are
// listed with their error and do not stop the walk.
func (l *Lister) List(root string) error {
	return WalkArchives(root, func(archive string) error {
		doc, err := ReadArchive(archive)
		if err != nil {
			_, werr := fmt.Fprintf(l.out, "## %s\n\nerror: %v\n\n", archive, err)
			return werr
		}
		return l.writePage(archive, doc)
	})
}

func (l *Lister) writePage(archive string, doc *PageDocument) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", doc.PageName)
	fmt.Fprintf(&b, "_%s, %d comments_\n\n", archive, len(doc.Comments))

	for _, comment := range doc.Comments {
		body, err := l.converter.ConvertString(comment.Body)
		if err != nil {
			return fmt.Errorf("converting comment body in %s: %w", archive, err)
		}
		fmt.Fprintf(&b, "**%s**, %s\n\n", comment.Author, FormatDate(ConvertDate(comment.ReferenceTimestamp)))
		if body = strings.TrimSpace(body); body != "" {
			fmt.Fprintf(&b, "%s\n\n", body)
		}
	}

	_, err := io.WriteString(l.out, b.String())
	return err
}
