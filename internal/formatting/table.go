package formatting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// statusTitle capitalizes runtime states for the STATUS column.
var statusTitle = cases.Title(language.AmericanEnglish)

// WriteInstances renders the managed containers as a table on out.
//
// Containers are printed in the order given. An empty listing prints a short
// notice instead of an empty table.
func WriteInstances(out io.Writer, instances []types.Instance) {
	if len(instances) == 0 {
		fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No database containers found"))

		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("FEATURE"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("PORTS"),
	})

	for _, instance := range instances {
		t.AppendRow(table.Row{
			instance.Name,
			instance.Feature,
			formatStatus(instance),
			instance.Ports,
		})
	}

	t.Render()
}

// formatStatus renders the container state, colored green while running.
func formatStatus(instance types.Instance) string {
	status := statusTitle.String(instance.State)
	if instance.Running {
		return text.FgGreen.Sprint(status)
	}

	return status
}
