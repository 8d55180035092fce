package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hedgineer/aiapi/apispec"
	"github.com/hedgineer/aiapi/registry"
)

var docsCmd = &cobra.Command{
	Use:   "docs <spec-file>",
	Short: "Render the model-facing documentation block for a spec file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocs,
}

func runDocs(_ *cobra.Command, args []string) error {
	sp, err := apispec.LoadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Println(registry.Documentation(sp))
	return nil
}
