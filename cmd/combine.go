package cmd

import (
	"fmt"
	"os"

	"repomd/pkg/combine"
	"repomd/pkg/logging"
	"repomd/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the parsed command-line flags.
type rootOptions struct {
	ignoreGlobs        []string
	includeLineNumbers bool
	output             string
	tree               bool
	debug              bool
}

// setupLogging initializes the global logger before any command runs.
func setupLogging(debug bool) error {
	if err := logging.Setup(debug, "repomd", version.Version); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// runCombine anchors the patterns at the current directory and runs the pipeline.
func runCombine(cmd *cobra.Command, patterns []string, opts *rootOptions) error {
	// Arguments are valid past this point; failures are no longer usage errors.
	cmd.SilenceUsage = true
	logger := logging.Logger

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	result, err := combine.Run(combine.Options{
		Patterns:           patterns,
		IgnorePatterns:     opts.ignoreGlobs,
		IncludeLineNumbers: opts.includeLineNumbers,
		WorkDir:            workDir,
		Output:             opts.output,
		Tree:               opts.tree,
	}, combine.Streams{
		Out:      cmd.OutOrStdout(),
		Err:      errOut,
		ColorErr: combine.ColorEnabled(errOut),
	}, logger)
	if err != nil {
		return err
	}

	logger.Debug("Run finished",
		zap.Int("rendered", len(result.Rendered)),
		zap.Int("skipped", len(result.Skipped)))
	return nil
}
