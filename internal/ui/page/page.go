// Package page holds the board's embedded markup and browser assets, and
// renders the page shell around a board.
package page

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

//go:embed assets/board.html
var boardHTML string

//go:embed static
var staticFiles embed.FS

// NewDocument parses a fresh copy of the board markup.
func NewDocument() (*dom.Document, error) {
	doc, err := dom.ParseString(boardHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing board markup: %w", err)
	}
	return doc, nil
}

// Static returns the browser assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Props configures the page shell.
type Props struct {
	Title string
	// WSPath is the websocket endpoint the client script connects to.
	WSPath string
	// StaticPrefix is the URL prefix the assets are served under.
	StaticPrefix string
	// App is the rendered app host, including its own tag.
	App string
}

// Shell renders a full HTML page around props.App.
func Shell(props Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="%s/board.css">
<script src="%s/board.js" defer></script>
</head>
<body data-ws="%s">
`,
			templ.EscapeString(props.Title),
			templ.EscapeString(props.StaticPrefix),
			templ.EscapeString(props.StaticPrefix),
			templ.EscapeString(props.WSPath),
		)
		if err != nil {
			return err
		}
		if err := templ.Raw(props.App).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}
