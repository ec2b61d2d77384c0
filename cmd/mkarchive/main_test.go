package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

func TestLoadFixture(t *testing.T) {
	fixture, err := loadFixture(filepath.Join("..", "..", "testdata", "domain.yaml"))
	if err != nil {
		t.Fatalf("loadFixture() error = %v", err)
	}

	if len(fixture.Blogs) != 2 {
		t.Fatalf("blogs = %d, want 2", len(fixture.Blogs))
	}
	pages := fixture.Blogs[0].Pages
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if pages[0].Name != "Lisbon" || len(pages[0].Comments) != 2 {
		t.Errorf("first page = %+v", pages[0])
	}
	if pages[0].Comments[0].Date != 257789700.0 {
		t.Errorf("date = %v, want 257789700", pages[0].Comments[0].Date)
	}
}

func TestBuildDomain(t *testing.T) {
	domain := t.TempDir()
	fixture := &Fixture{Blogs: []Blog{{
		Dir: "site-blog-1",
		Pages: []Page{{
			Dir:  "site-page-1",
			Name: "Home",
			Comments: []Comment{
				{Author: "Ann", Date: 1.5, Body: "<p>a & b</p>"},
			},
		}},
	}}}

	if err := buildDomain(fixture, domain); err != nil {
		t.Fatalf("buildDomain() error = %v", err)
	}

	archive := filepath.Join(domain, "site-blog-1", "site-page-1", "site-page-1.xml.gz")
	f, err := os.Open(archive)
	if err != nil {
		t.Fatalf("archive not written: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("archive is not gzip: %v", err)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(gz); err != nil {
		t.Fatalf("archive is not XML: %v", err)
	}

	page := doc.FindElement("//bl:site-page")
	if page == nil {
		t.Fatal("no bl:site-page element")
	}
	if got := page.SelectAttrValue("sf:name", ""); got != "Home" {
		t.Errorf("sf:name = %q, want Home", got)
	}

	comment := doc.FindElement("//sfa:comment")
	if comment == nil {
		t.Fatal("no sfa:comment element")
	}
	if got := comment.SelectAttrValue("bl:comment-author", ""); got != "Ann" {
		t.Errorf("author = %q, want Ann", got)
	}
	if got := comment.SelectAttrValue("bl:comment-comparison-date", ""); got != "1.5" {
		t.Errorf("date = %q, want 1.5", got)
	}
	body := comment.ChildElements()[0].SelectAttrValue("sfa:string", "")
	if body != "<p>a & b</p>" {
		t.Errorf("body = %q, want %q", body, "<p>a & b</p>")
	}
}
