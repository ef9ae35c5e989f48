package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "docgen",
		Short:         "Render HR documents from a request file without the HTTP service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("companies", "", "company registry YAML (defaults to the built-in companies)")
	rootCmd.PersistentFlags().String("templates", "", "template directory (defaults to the embedded templates)")
	rootCmd.PersistentFlags().String("assets", "static/images", "directory holding watermark images")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(breakdownCmd())
	rootCmd.AddCommand(companiesCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
