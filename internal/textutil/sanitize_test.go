package textutil_test

import (
	"testing"

	"shelfsync/internal/textutil"
)

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"a&nbsp;&nbsp;b", "a b"},
		{"&quot;quoted&quot; &#39;single&#39;", `"quoted" 'single'`},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := textutil.StripHTML(tc.in); got != tc.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak", "line break"},
		{"tab\there", "tab here"},
		{"bell\x07char", "bellchar"},
	}
	for _, tc := range cases {
		if got := textutil.EscapeValue(tc.in); got != tc.want {
			t.Fatalf("EscapeValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTagFormats(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts textutil.TagOptions
		want string
	}{
		{"dash default", "Science Fiction", textutil.TagOptions{Format: "dash"}, "science-fiction"},
		{"underscore", "Science Fiction", textutil.TagOptions{Format: "underscore"}, "science_fiction"},
		{"camelcase", "Science Fiction", textutil.TagOptions{Format: "camelcase"}, "scienceFiction"},
		{"strips punctuation", "Sci-Fi & Fantasy!", textutil.TagOptions{Format: "dash"}, "scifi-fantasy"},
		{"parent prefix", "History", textutil.TagOptions{Format: "dash", ParentTag: "Books"}, "books/history"},
		{"parent strips symbols", "History", textutil.TagOptions{Format: "dash", ParentTag: "my books!"}, "mybooks/history"},
		{"empty after cleaning", "!!!", textutil.TagOptions{Format: "dash"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.Tag(tc.in, tc.opts); got != tc.want {
				t.Fatalf("Tag(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileNameFormats(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts textutil.FileNameOptions
		want string
	}{
		{"dash lowercase", "The Great Book", textutil.FileNameOptions{Format: "dash", Lowercase: true}, "the-great-book"},
		{"ampersand", "War & Peace", textutil.FileNameOptions{Format: "dash", Lowercase: true}, "war-and-peace"},
		{"underscore", "The Great Book", textutil.FileNameOptions{Format: "underscore", Lowercase: true}, "the_great_book"},
		{"camelcase", "The Great Book", textutil.FileNameOptions{Format: "camelcase"}, "theGreatBook"},
		{"original keeps spaces", "The Great Book", textutil.FileNameOptions{Format: "original"}, "The Great Book"},
		{"unsafe chars collapse", `What: "a/title"?`, textutil.FileNameOptions{Format: "dash", Lowercase: true}, "what-atitle"},
		{"empty input", "", textutil.FileNameOptions{Format: "dash"}, "untitled"},
		{"only unsafe chars", `<>:"/\|?*`, textutil.FileNameOptions{Format: "dash"}, "untitled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.FileName(tc.in, tc.opts); got != tc.want {
				t.Fatalf("FileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileNameDeterministicAcrossUnsafeVariants(t *testing.T) {
	opts := textutil.FileNameOptions{Format: "dash", Lowercase: true}
	a := textutil.FileName("The Odyssey", opts)
	b := textutil.FileName(`The Odyssey?`, opts)
	c := textutil.FileName(`The* Odyssey`, opts)
	if a != b || b != c {
		t.Fatalf("titles differing only in unsafe characters must collapse: %q %q %q", a, b, c)
	}
}

func TestFileNameTruncatesAtWordBoundary(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "chapter "
	}
	got := textutil.FileName(long, textutil.FileNameOptions{Format: "dash", Lowercase: true})
	if len(got) > 100 {
		t.Fatalf("filename exceeds limit: %d chars", len(got))
	}
	if got[len(got)-1] == '-' {
		t.Fatalf("expected truncation at a word boundary, got %q", got)
	}
}
