package page_test

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/jsamuelsen11/project-board/internal/ui/page"
)

func TestNewDocument_HasBoardStructure(t *testing.T) {
	t.Parallel()

	doc, err := page.NewDocument()
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	if _, err := doc.ElementByID("app"); err != nil {
		t.Errorf("ElementByID(app) error = %v", err)
	}
	for _, id := range []string{"project-input", "project-list", "single-project"} {
		if _, err := doc.ImportTemplate(id); err != nil {
			t.Errorf("ImportTemplate(%q) error = %v", id, err)
		}
	}
}

func TestStatic_ServesClientAssets(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"board.js", "board.css"} {
		data, err := fs.ReadFile(page.Static(), name)
		if err != nil {
			t.Errorf("ReadFile(%q) error = %v", name, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := page.Shell(page.Props{
		Title:        "Board <dev>",
		WSPath:       "/ws",
		StaticPrefix: "/static",
		App:          `<div id="app"><p>hi</p></div>`,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Board &lt;dev&gt;</title>",
		`<body data-ws="/ws">`,
		`src="/static/board.js"`,
		`<div id="app"><p>hi</p></div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}
