package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable("Metrics",
		[]string{"Name", "Value"},
		[][]string{{"cyclomatic", "3"}, {"nesting", "2"}},
		[]string{"total", "5"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Metrics",
		"| Name | Value |",
		"| --- | --- |",
		"| cyclomatic | 3 |",
		"| total | 5 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable("Metrics",
		[]string{"Name", "Value"},
		[][]string{{"cyclomatic", "3"}},
		nil,
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Metrics") {
		t.Errorf("text output missing title:\n%s", out)
	}
	if !strings.Contains(out, "cyclomatic") {
		t.Errorf("text output missing row:\n%s", out)
	}
}

func TestTableRenderDataFromRows(t *testing.T) {
	table := NewTable("", []string{"Name", "Value"}, [][]string{{"a", "1"}}, nil, nil)

	data, ok := table.RenderData().([]map[string]string)
	if !ok {
		t.Fatalf("RenderData() = %T, want []map[string]string", table.RenderData())
	}
	if len(data) != 1 || data[0]["Name"] != "a" || data[0]["Value"] != "1" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestTableRenderDataPrefersStructured(t *testing.T) {
	payload := map[string]int{"score": 42}
	table := NewTable("", nil, nil, nil, payload)

	data, ok := table.RenderData().(map[string]int)
	if !ok || data["score"] != 42 {
		t.Errorf("RenderData() = %v, want structured payload", table.RenderData())
	}
}

func TestSectionRenderText(t *testing.T) {
	s := &Section{
		Title:   "Summary",
		Content: "all good",
		Sections: []Section{
			{Title: "Details", Content: "nested"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Summary\n=======") {
		t.Errorf("top section not underlined with =:\n%s", out)
	}
	if !strings.Contains(out, "Details\n-------") {
		t.Errorf("subsection not underlined with -:\n%s", out)
	}
	if !strings.Contains(out, "nested") {
		t.Errorf("subsection content missing:\n%s", out)
	}
}

func TestSectionRenderMarkdownNesting(t *testing.T) {
	s := &Section{
		Title: "Summary",
		Sections: []Section{
			{Title: "Details"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Summary") || !strings.Contains(out, "### Details") {
		t.Errorf("markdown heading levels wrong:\n%s", out)
	}
}

func TestReportRenderText(t *testing.T) {
	r := &Report{
		Title: "Analysis",
		Sections: []Renderable{
			&Section{Title: "One", Content: "first"},
			NewTable("Two", []string{"K"}, [][]string{{"v"}}, nil, nil),
		},
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Analysis", "first", "Two"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatterJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatal(err)
	}
	if f.Colored() {
		t.Error("file output should disable color")
	}

	if err := f.Output(map[string]any{"score": 42}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"score": 42`) {
		t.Errorf("unexpected json output: %s", raw)
	}
}

func TestFormatterYAMLUsesJSONTags(t *testing.T) {
	type payload struct {
		OverallScore float64 `json:"overall_score"`
		Skip         string  `json:"skip,omitempty"`
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	f, err := NewFormatter(FormatYAML, path, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Output(payload{OverallScore: 87.5}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	if !strings.Contains(out, "overall_score: 87.5") {
		t.Errorf("yaml should use json field names:\n%s", out)
	}
	if strings.Contains(out, "skip") {
		t.Errorf("omitempty field leaked into yaml:\n%s", out)
	}
}

func TestSeverityColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []string{"critical", "high", "medium", "moderate", "low", "simple", "whatever"}
	for _, sev := range tests {
		if got := SeverityColor(sev, "txt"); got != "txt" {
			t.Errorf("SeverityColor(%q) = %q, want plain text with color disabled", sev, got)
		}
	}
}
