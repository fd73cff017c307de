// Command saihu is a thin CLI front end exercising the analysis core end to
// end: load a network description, run one worst-case delay method over
// it, and print the aggregated per-flow/per-server report. It is
// illustrative glue, not a general-purpose tool — spec.md explicitly
// excludes "CLI argument parsing and filesystem layout" from the core
// itself.
package main

import "github.com/adfeel220/saihu/cmd/saihu/cli"

func main() {
	cli.Execute()
}
