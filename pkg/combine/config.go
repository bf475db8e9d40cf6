// File: pkg/combine/config.go
package combine

import "io"

// Options holds the configuration for a single combine run.
type Options struct {
	Patterns           []string // Include glob patterns; at least one is required.
	IgnorePatterns     []string // Exclude glob patterns, resolved exactly like Patterns.
	IncludeLineNumbers bool     // Prefix every content line with its 1-based number.
	WorkDir            string   // Directory that patterns and displayed paths are relative to.
	Output             string   // Destination file for the document; "" or "-" means Streams.Out.
	Tree               bool     // Emit a tree of the selected files before the first block.
}

// Streams are the process streams a run writes to.
type Streams struct {
	Out      io.Writer // Document destination when Options.Output is unset.
	Err      io.Writer // Skip warnings.
	ColorErr bool      // Style skip warnings with ANSI colors.
}
