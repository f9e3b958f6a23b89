package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ktestable",
		Short:         "Learn a k-testable-in-the-strict-sense language from example strings",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newLearnCommand())
	return root
}
