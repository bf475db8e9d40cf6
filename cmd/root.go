package cmd

import (
	"github.com/spf13/cobra"
)

const rootLong = `repomd concatenates the files matched by one or more glob patterns into a
single Markdown document for sharing with Large Language Models.

For each matching file it prints a header with the file's path relative to
the current directory, followed by the file's content in a fenced block.
Files are printed in lexical order of their relative path.

Patterns support *, **, ?, [abc], [^abc] and {a,b}. Quote them so the shell
does not expand them first.

The default output is token-efficient (no line numbers). Use --include-ln for
line-based feedback. Files that are not valid UTF-8, or cannot be read, are
reported on stderr and skipped.`

const rootExample = `  # Share models and specs, excluding node_modules
  repomd '**/*.rb' '**/*.ts' --ignore-glob 'node_modules/**/*'

  # Share an entire feature's worth of code, with line numbers for debugging
  repomd 'app/{models,controllers}/payment/**/*' --include-ln

  # Write the document to a file, with a tree of the included files on top
  repomd 'src/**/*.go' --tree -o context.md`

// NewRootCommand creates the repomd command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "repomd [flags] <glob_pattern> [<glob_pattern> ...]",
		Short:   "Concatenate files matched by glob patterns into a Markdown document for LLMs",
		Long:    rootLong,
		Example: rootExample,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.ignoreGlobs, "ignore-glob", nil, "Glob pattern of files to exclude (repeatable)")
	flags.BoolVar(&opts.includeLineNumbers, "include-ln", false, "Prefix every line with its line number")
	flags.StringVarP(&opts.output, "output", "o", "-", "Write the document to this file instead of stdout")
	flags.BoolVar(&opts.tree, "tree", false, "Print a tree of the included files before their contents")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")

	setVersion(cmd)
	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
