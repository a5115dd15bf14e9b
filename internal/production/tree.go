package production

import (
	"fmt"
	"io"
	"strings"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

// RenderTree writes the hierarchy under root, one component per line. With
// details set, regions show their function and activity and cortical areas
// also show area type and layer count.
func RenderTree(w io.Writer, root core.Component, details bool) error {
	return root.Walk(func(c core.Component, depth int) error {
		line := strings.Repeat("  ", depth) + "├── " + c.Name()
		if details {
			line += describe(c)
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

func describe(c core.Component) string {
	level, _ := c.ActivityLevel()
	switch c.Kind() {
	case primitives.KindRegion:
		return fmt.Sprintf(" [%s activity=%.2f]", c.Function(), level)
	case primitives.KindCortical:
		return fmt.Sprintf(" [%s %s L%d activity=%.2f]", c.Function(), c.AreaType(), c.Layers(), level)
	}
	return ""
}
