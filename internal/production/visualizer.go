package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/comalice/nervetree/internal/primitives"
)

// DefaultVisualizer is the stdlib-only implementation of core.Visualizer.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the network. Components with
// children become clusters, connections become edges, and regions are
// filled by activity level.
func (v *DefaultVisualizer) ExportDOT(config primitives.NetworkConfig, activity map[string]float64) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Network {
  rankdir=LR;
  compound=true;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	if config.Root != nil {
		renderComponent(&buf, config.Root, config.Root.Name, activity, 1)
	}

	for _, conn := range config.Connections {
		buf.WriteString(fmt.Sprintf("  %q -> %q;\n", conn.From, conn.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the network config to JSON.
func (v *DefaultVisualizer) ExportJSON(config primitives.NetworkConfig) ([]byte, error) {
	return json.MarshalIndent(config, "", "  ")
}

// renderComponent recursively renders components and clusters.
func renderComponent(buf *bytes.Buffer, c *primitives.ComponentConfig, path string, activity map[string]float64, depth int) {
	indent := strings.Repeat("  ", depth)

	if len(c.Children) > 0 {
		buf.WriteString(fmt.Sprintf("%ssubgraph %q {\n", indent, "cluster_"+clusterID(path)))
		buf.WriteString(fmt.Sprintf("%s  label=%q;\n", indent, c.Name))
		writeNode(buf, indent+"  ", c, path, activity)
		for _, child := range c.Children {
			renderComponent(buf, child, path+primitives.PathSeparator+child.Name, activity, depth+1)
		}
		buf.WriteString(indent + "}\n")
		return
	}
	writeNode(buf, indent, c, path, activity)
}

func writeNode(buf *bytes.Buffer, indent string, c *primitives.ComponentConfig, path string, activity map[string]float64) {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(c, path, activity))}
	switch c.EffectiveKind() {
	case primitives.KindRegion:
		attrs = append(attrs, "shape=ellipse")
	case primitives.KindCortical:
		attrs = append(attrs, "shape=box3d")
	}
	if color := activityColor(activity[path]); color != "" {
		attrs = append(attrs, "style=filled", "fillcolor="+color)
	}
	buf.WriteString(fmt.Sprintf("%s%q [%s];\n", indent, path, strings.Join(attrs, " ")))
}

func nodeLabel(c *primitives.ComponentConfig, path string, activity map[string]float64) string {
	switch c.EffectiveKind() {
	case primitives.KindRegion:
		return fmt.Sprintf("%s\n%s %.2f", c.Name, c.Function, activity[path])
	case primitives.KindCortical:
		return fmt.Sprintf("%s\n%s/%s L%d %.2f", c.Name, c.Function, c.AreaType, c.EffectiveLayers(), activity[path])
	}
	return c.Name
}

// activityColor buckets an activity level; zero activity is unfilled.
func activityColor(level float64) string {
	switch {
	case level <= 0:
		return ""
	case level < 0.5:
		return "lightgreen"
	case level < 1:
		return "orange"
	default:
		return "red"
	}
}

func clusterID(path string) string {
	return strings.NewReplacer(primitives.PathSeparator, "_", " ", "_").Replace(path)
}
