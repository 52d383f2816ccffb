package main

import (
	"fmt"
	"strings"

	"github.com/paperpress/paperpress"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	opts := c.Options(deps.Config.Defaults)

	if issues := deps.Renderer.ValidateOptions(opts); len(issues) > 0 {
		fmt.Fprintf(deps.Stderr, "error: invalid options:\n")
		for _, issue := range issues {
			fmt.Fprintf(deps.Stderr, "  - %s\n", issue)
		}
		return paperpress.Errorf(paperpress.EINVALID, "invalid conversion options: %s", strings.Join(issues, "; "))
	}

	output, err := deps.Pipeline.Convert(deps.Ctx, c.URL, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paperpress.ErrorMessage(err))
		if hint := paperpress.ErrorHint(err); hint != "" {
			fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s\n", output)
	return nil
}
