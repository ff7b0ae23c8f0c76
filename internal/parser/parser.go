
package parser

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"newscheck/internal/models"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extract returns the visible text of every <p> on the page joined by single spaces.
func (p *Parser) Extract(r io.Reader, contentType string) (models.Page, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return models.Page{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return models.Page{}, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return models.Page{}, err
	}

	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var parts []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		t := strings.TrimSpace(whitespaceRe.ReplaceAllString(s.Text(), " "))
		if t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.Join(parts, " ")

	lang := strings.TrimSpace(doc.Find("html").AttrOr("lang", ""))
	if lang == "" {
		lang = strings.TrimSpace(doc.Find(`meta[property="og:locale"]`).AttrOr("content", ""))
	}

	return models.Page{
		Meta: models.Meta{
			Title:    strings.TrimSpace(doc.Find("title").First().Text()),
			Language: lang,
		},
		Content: models.Content{
			Text:       text,
			Paragraphs: len(parts),
			WordCount:  len(strings.Fields(text)),
		},
	}, nil
}
