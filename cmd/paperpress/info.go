package main

import (
	"fmt"

	"github.com/paperpress/paperpress/pandoc"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	info := deps.Renderer.Inspect(deps.Ctx)

	if info.PandocAvailable {
		fmt.Fprintf(deps.Stdout, "pandoc: %s\n", info.PandocVersion)
	} else {
		fmt.Fprintln(deps.Stdout, "pandoc: not found")
	}

	fmt.Fprintln(deps.Stdout, "engines:")
	for _, engine := range []string{"xelatex", "pdflatex", "lualatex"} {
		status := "missing"
		if info.Engines[engine] {
			status = "ok"
		}
		fmt.Fprintf(deps.Stdout, "  %-10s %s\n", engine, status)
	}

	fmt.Fprintln(deps.Stdout, "templates:")
	for _, name := range info.Templates {
		tmpl, _ := pandoc.LookupTemplate(name)
		fmt.Fprintf(deps.Stdout, "  %-10s %s\n", name, tmpl.Description)
	}

	return nil
}
