package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Fixture describes a synthetic iWeb Domain.sites2 tree
type Fixture struct {
	Blogs []Blog `yaml:"blogs"`
}

// Blog is one site-blog-* container
type Blog struct {
	Dir   string `yaml:"dir"`
	Pages []Page `yaml:"pages"`
}

// Page is one site-page-* directory and its archive contents
type Page struct {
	Dir      string    `yaml:"dir"`
	Name     string    `yaml:"name"`
	Comments []Comment `yaml:"comments"`
}

// Comment is one reader comment; Date is seconds since 2001-01-01 UTC
type Comment struct {
	Author string  `yaml:"author"`
	Date   float64 `yaml:"date"`
	Body   string  `yaml:"body"`
}

var namespaces = [][2]string{
	{"sl", "http://developer.apple.com/namespaces/sl"},
	{"sf", "http://developer.apple.com/namespaces/sf"},
	{"sfa", "http://developer.apple.com/namespaces/sfa"},
	{"bl", "http://developer.apple.com/namespaces/bl"},
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: mkarchive <fixture.yaml> <domain-directory>")
	}

	fixture, err := loadFixture(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	if err := buildDomain(fixture, os.Args[2]); err != nil {
		log.Fatal(err)
	}
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &fixture, nil
}

func buildDomain(fixture *Fixture, domainDir string) error {
	for _, blog := range fixture.Blogs {
		for _, page := range blog.Pages {
			pageDir := filepath.Join(domainDir, blog.Dir, page.Dir)
			if err := os.MkdirAll(pageDir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", pageDir, err)
			}

			archive := filepath.Join(pageDir, page.Dir+".xml.gz")
			log.Printf("Writing %s (%d comments)", archive, len(page.Comments))
			if err := writeArchive(archive, pageDocument(page)); err != nil {
				return fmt.Errorf("writing %s: %w", archive, err)
			}
		}
	}
	return nil
}

func pageDocument(page Page) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("sl:document")
	for _, ns := range namespaces {
		root.CreateAttr("xmlns:"+ns[0], ns[1])
	}

	sitePage := root.CreateElement("bl:site-page")
	sitePage.CreateAttr("sf:name", page.Name)

	comments := sitePage.CreateElement("bl:comments")
	for _, c := range page.Comments {
		comment := comments.CreateElement("sfa:comment")
		comment.CreateAttr("bl:comment-author", c.Author)
		comment.CreateAttr("bl:comment-comparison-date", strconv.FormatFloat(c.Date, 'f', -1, 64))
		comment.CreateElement("sf:text-storage").CreateAttr("sfa:string", c.Body)
	}

	doc.Indent(2)
	return doc
}

func writeArchive(path string, doc *etree.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	gz := gzip.NewWriter(f)
	if _, err := doc.WriteTo(gz); err != nil {
		return err
	}
	return gz.Close()
}
