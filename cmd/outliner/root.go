package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Document outline extraction from font and layout signals",
	Long: `Outliner infers document structure (title and H1-H4 headings) from
font statistics, numbering patterns, keywords and page geometry, without
any model inference or training data.

Supported inputs: PDF, DOCX, Markdown and HTML.

Run it as an HTTP service (outliner serve) or batch-process files from
the command line (outliner extract).`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}
