package extract

import (
	"strings"
	"testing"
)

func TestHTMLExtractorFlattensToLines(t *testing.T) {
	input := `<html><head><title>Resume</title><style>body{}</style></head><body>
<nav>Home | About</nav>
<h1>Jane Doe</h1>
<h2>Experience</h2>
<p>Software Engineer, Acme</p>
<ul><li>Built data pipelines</li><li>Shipped the dashboard</li></ul>
<script>alert(1)</script>
<footer>contact me</footer>
</body></html>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "resume.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Jane Doe",
		"Experience",
		"Software Engineer, Acme",
		"Built data pipelines",
		"Shipped the dashboard",
	}
	lines := strings.Split(got, "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestHTMLExtractorBareText(t *testing.T) {
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader("<div><p>just text</p></div>"), "frag.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "just text" {
		t.Errorf("expected %q, got %q", "just text", got)
	}
}
