package web

import (
	"io"

	g "github.com/maragudk/gomponents"
)

func Render(w io.Writer, node g.Node) error {
	return node.Render(w)
}
