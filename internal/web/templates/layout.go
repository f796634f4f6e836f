// Package templates renders the HTML views as templ components
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // info, success, error
	Message string
}

// PageData holds the fields every page needs
type PageData struct {
	Title string
	Flash *FlashMessage
}

const stylesheet = `body{font-family:sans-serif;margin:2em}
table.board{border-collapse:collapse}
table.board td{width:2em;height:2em;text-align:center;border:1px solid #999;font-size:.8em}
td.bonus-TW{background:#e55}td.bonus-DW{background:#fbb}
td.bonus-TL{background:#55e;color:#fff}td.bonus-DL{background:#bdf}
td.tile{background:#f5deb3;font-weight:bold;font-size:1em}td.tile.blank{color:#888}
.flash{padding:.5em;margin-bottom:1em;border:1px solid}`

// Page wraps a body component in the site layout
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s | Tile Game</title><style>%s</style></head><body>`,
			templ.EscapeString(data.Title), stylesheet); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<nav><a href="/">Tile Game</a></nav><main>`); err != nil {
			return err
		}
		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-%s" id="flash">%s</div>`,
				templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// ErrorPage renders a status page
func ErrorPage(status int, message string) templ.Component {
	title := fmt.Sprintf("%d", status)
	return Page(PageData{Title: title}, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1 id="error-status">%d</h1><p id="error-message">%s</p><p><a href="/">Return to home</a></p>`,
			status, templ.EscapeString(message))
		return err
	}))
}
