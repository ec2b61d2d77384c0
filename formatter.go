package main

import (
	_ "embed"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/comment.html
var commentTemplateText string

// commentTemplate is executed with text/template on purpose: the author and
// date arrive entity-encoded and the body is markup that must pass through.
var commentTemplate = template.Must(template.New("comment").Parse(commentTemplateText))

const (
	pageHeader = `<div id="widget1-content">` +
		`<div id="widget1-header" class="Comment_Header" style="display: inline; ">` +
		`<div style="border-bottom: 5px solid #ccc; padding: 0px 0 10px 0;">` +
		`<span class="comment-value-comment-count">COMMENTS ARCHIVED</span></div></div>`
	pageFooter = `</div>`
)

// CommentView is the data handed to the comment template
type CommentView struct {
	Author string
	Date   string
	Body   string
}

// WriteComment writes the HTML block for one comment to w
func WriteComment(w io.Writer, author, date, body string) error {
	return commentTemplate.Execute(w, CommentView{Author: author, Date: date, Body: body})
}

// FormatComment returns the HTML block for one comment
func FormatComment(author, date, body string) (string, error) {
	var b strings.Builder
	if err := WriteComment(&b, author, date, body); err != nil {
		return "", err
	}
	return b.String(), nil
}
