package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/a-h/templ"

	"github.com/mcoot/tilegame/internal/model"
)

// cellClass picks the CSS classes for a board marker
func cellClass(marker string) string {
	switch model.BonusType(marker) {
	case model.BonusNone:
		return "cell"
	case model.BonusDoubleLetter, model.BonusTripleLetter, model.BonusDoubleWord, model.BonusTripleWord:
		return "cell bonus-" + marker
	}
	if r := []rune(marker); len(r) == 1 && unicode.IsLower(r[0]) {
		return "cell tile blank"
	}
	return "cell tile"
}

// cellText is what a cell shows: letters upper case, bonus codes as is
func cellText(marker string) string {
	switch model.BonusType(marker) {
	case model.BonusDoubleLetter, model.BonusTripleLetter, model.BonusDoubleWord, model.BonusTripleWord:
		return marker
	}
	return strings.ToUpper(marker)
}

// BoardGrid renders a board snapshot as a table with one td per cell
func BoardGrid(cells [][]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<table class="board" id="board"><tbody>`)
		for row, line := range cells {
			b.WriteString("<tr>")
			for col, marker := range line {
				fmt.Fprintf(&b, `<td class="%s" data-row="%d" data-col="%d">%s</td>`,
					cellClass(marker), row, col, templ.EscapeString(cellText(marker)))
			}
			b.WriteString("</tr>")
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
