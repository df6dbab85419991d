package internal

import (
	"strings"

	"golang.org/x/net/html"
)

// SourceHasTBody reports whether the first table carrying class contains a
// <tbody> start tag in the markup itself. The tree built by html.Parse always
// has one, so the source has to be tokenized to tell them apart.
func SourceHasTBody(src, class string) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "table":
				if depth > 0 {
					depth++
				} else if tt == html.StartTagToken && hasAttr && tokenHasClass(z, class) {
					depth = 1
				}
			case "tbody":
				if depth > 0 {
					return true
				}
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); depth > 0 && string(name) == "table" {
				depth--
				if depth == 0 {
					return false
				}
			}
		}
	}
}

func tokenHasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" && classMatches(string(val), class) {
			return true
		}
		if !more {
			return false
		}
	}
}
