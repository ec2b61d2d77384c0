package main

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const (
	pageTag          = "bl:site-page"
	pageNameAttr     = "sf:name"
	commentTag       = "sfa:comment"
	commentAuthor    = "bl:comment-author"
	commentDate      = "bl:comment-comparison-date"
	commentBodyAttr  = "sfa:string"
	referenceEpoch   = 978307200.0    // 2001-01-01T00:00:00Z in Unix seconds
	minUnixSeconds   = -62135596800.0 // 0001-01-01T00:00:00Z
	maxUnixSeconds   = 253402300800.0 // 10000-01-01T00:00:00Z, exclusive
	commentDateStyle = "Monday, January 02, 2006 - 03:04 PM"
)

// ReadArchive decompresses and parses one page archive. Any failure is
// returned as an *ArchiveError naming the archive.
func ReadArchive(path string) (*PageDocument, error) {
	doc, err := readArchive(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}
	return doc, nil
}

func readArchive(path string) (*PageDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ArchiveNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompressing archive: %w", err)
	}
	defer gz.Close()

	xmlDoc := etree.NewDocument()
	if _, err := xmlDoc.ReadFrom(gz); err != nil {
		return nil, fmt.Errorf("parsing archive XML: %w", err)
	}

	return parsePageDocument(&xmlDoc.Element)
}

// parsePageDocument extracts the page name and comments from a parsed archive
func parsePageDocument(root *etree.Element) (*PageDocument, error) {
	pages := elementsByTag(root, pageTag)
	if len(pages) == 0 {
		return nil, fmt.Errorf("no <%s> element", pageTag)
	}
	pageName, err := requiredAttr(pages[0], pageNameAttr)
	if err != nil {
		return nil, err
	}

	doc := &PageDocument{PageName: pageName}
	for i, el := range elementsByTag(root, commentTag) {
		comment, err := parseComment(el)
		if err != nil {
			return nil, fmt.Errorf("comment %d: %w", i+1, err)
		}
		doc.Comments = append(doc.Comments, comment)
	}
	debugLog("parsed page %q with %d comments", doc.PageName, len(doc.Comments))

	return doc, nil
}

func parseComment(el *etree.Element) (CommentRecord, error) {
	author, err := requiredAttr(el, commentAuthor)
	if err != nil {
		return CommentRecord{}, err
	}

	rawDate, err := requiredAttr(el, commentDate)
	if err != nil {
		return CommentRecord{}, err
	}
	timestamp, err := strconv.ParseFloat(strings.TrimSpace(rawDate), 64)
	if err != nil {
		return CommentRecord{}, fmt.Errorf("parsing %s: %w", commentDate, err)
	}
	if !validTimestamp(timestamp) {
		return CommentRecord{}, fmt.Errorf("parsing %s: out of range", commentDate)
	}

	children := el.ChildElements()
	if len(children) == 0 {
		return CommentRecord{}, fmt.Errorf("no body element")
	}
	body, err := requiredAttr(children[0], commentBodyAttr)
	if err != nil {
		return CommentRecord{}, fmt.Errorf("body: %w", err)
	}

	return CommentRecord{
		Author:             author,
		ReferenceTimestamp: timestamp,
		Body:               body,
	}, nil
}

func requiredAttr(el *etree.Element, key string) (string, error) {
	attr := el.SelectAttr(key)
	if attr == nil {
		return "", fmt.Errorf("<%s> missing attribute %s", el.FullTag(), key)
	}
	return attr.Value, nil
}

// elementsByTag returns all descendants of root with the given prefixed tag,
// in document order.
func elementsByTag(root *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.FullTag() == tag {
				found = append(found, child)
			}
			visit(child)
		}
	}
	visit(root)
	return found
}

// validTimestamp reports whether seconds converts to an instant in years 1 through 9999
func validTimestamp(seconds float64) bool {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return false
	}
	unix := seconds + referenceEpoch
	return unix >= minUnixSeconds && unix < maxUnixSeconds
}

// ConvertDate converts an archive timestamp to a UTC instant
func ConvertDate(seconds float64) time.Time {
	unix := seconds + referenceEpoch
	whole := math.Floor(unix)
	nanos := math.Round((unix - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// FormatDate renders an instant the way the comment template shows it
func FormatDate(t time.Time) string {
	return t.UTC().Format(commentDateStyle)
}
