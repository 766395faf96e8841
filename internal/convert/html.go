// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/transform"
)

// nonContent lists elements dropped before rendering. script, style and
// noscript are already removed by the base plugin.
const nonContent = "nav, header, footer, aside, form, button, select, canvas, svg, iframe, embed, object, video, audio"

var blankRuns = regexp.MustCompile(`\n{3,}`)

type htmlConverter struct {
	conv *converter.Converter
}

func newHTMLConverter() *htmlConverter {
	return &htmlConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

func (h *htmlConverter) convertFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(transform.NewReader(f, newUTF8Decoder()))
	if err != nil {
		return "", fmt.Errorf("parsing html %s: %w", path, err)
	}
	doc.Find(nonContent).Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering html %s: %w", path, err)
	}

	md, err := h.conv.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("converting html %s to markdown: %w", path, err)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n")), nil
}
