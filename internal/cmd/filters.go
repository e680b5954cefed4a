package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/MrJJimenez/jobboard/internal/query"
)

type FiltersCmd struct{}

func (f *FiltersCmd) Run(ctx *Context) error {
	options := query.FilterOptions()
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(options)
	}

	if ctx.PlainText {
		for _, role := range options.Roles {
			fmt.Fprintf(ctx.Out, "roles\t%s\t%s\n", role.Group, role.Name)
		}
		for _, row := range optionRows(options) {
			fmt.Fprintf(ctx.Out, "%s\t\t%s\n", row[0], row[1])
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "filter\tvalues")
	for _, group := range roleGroups(options) {
		fmt.Fprintf(tw, "roles (%s)\t%s\n", group.name, strings.Join(group.roles, ", "))
	}
	for _, row := range optionRows(options) {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

type roleGroup struct {
	name  string
	roles []string
}

func roleGroups(options query.Options) []roleGroup {
	var groups []roleGroup
	for _, role := range options.Roles {
		if len(groups) == 0 || groups[len(groups)-1].name != role.Group {
			groups = append(groups, roleGroup{name: role.Group})
		}
		last := &groups[len(groups)-1]
		last.roles = append(last.roles, role.Name)
	}
	return groups
}

func optionRows(options query.Options) [][2]string {
	return [][2]string{
		{"experience", strings.Join(options.Experience, ", ")},
		{"location", strings.Join(options.Location, ", ")},
		{"salary", strings.Join(options.Salary, ", ")},
	}
}
