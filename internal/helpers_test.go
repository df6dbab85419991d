package internal

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	return doc
}

func TestWalkNodes(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body><p>Test</p></body></html>`)

	count := 0
	WalkNodes(doc, func(n *html.Node) bool {
		count++
		return true
	})

	if count == 0 {
		t.Error("WalkNodes() should visit nodes")
	}
}

func TestWalkNodesPrunesSubtree(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<div id="skip"><span>inner</span></div><p>after</p>`)

	var seen []string
	WalkNodes(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			seen = append(seen, n.Data)
			return n.Data != "div"
		}
		return true
	})

	for _, tag := range seen {
		if tag == "span" {
			t.Fatalf("WalkNodes() descended into pruned subtree: %v", seen)
		}
	}
	if seen[len(seen)-1] != "p" {
		t.Errorf("WalkNodes() should continue with siblings, got %v", seen)
	}
}

func TestWalkNodesNil(t *testing.T) {
	t.Parallel()

	WalkNodes(nil, func(n *html.Node) bool {
		t.Error("Should not visit nodes when root is nil")
		return true
	})
}

func TestFindElementByTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		tag     string
		wantNil bool
	}{
		{
			name: "find title",
			html: `<html><head><title>Test</title></head></html>`,
			tag:  "title",
		},
		{
			name: "find nested button",
			html: `<table><tr><td><div><button>x</button></div></td></tr></table>`,
			tag:  "button",
		},
		{
			name:    "tag not found",
			html:    `<html><body><p>Test</p></body></html>`,
			tag:     "article",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			got := FindElementByTag(doc, tt.tag)
			if (got == nil) != tt.wantNil {
				t.Errorf("FindElementByTag(%q) nil = %v, want %v", tt.tag, got == nil, tt.wantNil)
			}
		})
	}
}

func TestFindElementExcludesRoot(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<div><div id="inner"></div></div>`)
	outer := FindElementByTag(doc, "div")
	inner := FindElementByTag(outer, "div")
	if inner == nil || inner == outer {
		t.Fatal("FindElementByTag() should only return descendants of the root")
	}
	if id, _ := GetAttr(inner, "id"); id != "inner" {
		t.Errorf("found div id = %q, want inner", id)
	}
}

func TestFindAllByTagDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<ul><li>a</li><li>b<ul><li>c</li></ul></li><li>d</li></ul>`)
	items := FindAllByTag(doc, "li")

	var got []string
	for _, li := range items {
		got = append(got, strings.TrimSpace(li.FirstChild.Data))
	}
	want := "a b c d"
	if strings.Join(got, " ") != want {
		t.Errorf("FindAllByTag() order = %v, want %s", got, want)
	}
}

func TestHasClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		html  string
		class string
		want  bool
	}{
		{"exact", `<table class="download"></table>`, "download", true},
		{"token", `<table class="table download striped"></table>`, "download", true},
		{"prefix only", `<table class="downloads"></table>`, "download", false},
		{"missing attribute", `<table></table>`, "download", false},
		{"case sensitive", `<table class="Download"></table>`, "download", false},
		{"empty class", `<table class="download"></table>`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := FindElementByTag(parseDoc(t, tt.html), "table")
			if got := HasClass(table, tt.class); got != tt.want {
				t.Errorf("HasClass(%q) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}

func TestGetTextContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"single text", `<p>  Linux x86_64 </p>`, "Linux x86_64"},
		{"nested joined with space", `<p>Linux<span>x86_64</span></p>`, "Linux x86_64"},
		{"whitespace nodes kept", `<p>Linux <b>arm64</b></p>`, "Linux  arm64"},
		{"empty", `<p></p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FindElementByTag(parseDoc(t, tt.html), "p")
			if got := GetTextContent(p); got != tt.want {
				t.Errorf("GetTextContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetStrippedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"trimmed", `<p>  1.2 GB  </p>`, "1.2 GB"},
		{"pieces concatenated", `<p> studio- <i> ide </i>-1.0 </p>`, "studio-ide-1.0"},
		{"empty", `<p>   </p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FindElementByTag(parseDoc(t, tt.html), "p")
			if got := GetStrippedText(p); got != tt.want {
				t.Errorf("GetStrippedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExceedsDepth(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "<div>"+strings.Repeat("<span>", 20)+"x")

	if ExceedsDepth(doc, 100) {
		t.Error("ExceedsDepth(100) = true for a shallow document")
	}
	if !ExceedsDepth(doc, 10) {
		t.Error("ExceedsDepth(10) = false for a 20-level nesting")
	}
}
