package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hedgineer/aiapi/apispec"
)

var lintCmd = &cobra.Command{
	Use:   "lint <spec-file>...",
	Short: "Validate one or more JSON/YAML spec files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func runLint(_ *cobra.Command, args []string) error {
	errs := make([]error, len(args))

	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			_, errs[i] = apispec.LoadFile(path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, path := range args {
		if errs[i] != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", path, errs[i])
			continue
		}
		fmt.Printf("OK   %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d spec files invalid", failed, len(args))
	}
	return nil
}
