package parser

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("### Matrix\n\n| a | b |\n|---|---|\n| O | X |\n")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	for _, want := range []string{"<h3>Matrix</h3>", "<table>", "<th>a</th>", "<td>O</td>"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderHTML() missing %q in %q", want, out)
		}
	}
}

func TestRenderHTML_NoRawHTML(t *testing.T) {
	out, err := RenderHTML("<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML passed through: %q", out)
	}
}
