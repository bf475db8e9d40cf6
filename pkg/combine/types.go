package combine

// FileRecord is the decoded content of a single matched file.
type FileRecord struct {
	Path    string   // Absolute path of the file.
	RelPath string   // Slash-separated path relative to the working directory.
	Lines   []string // Lines with their trailing newline; the last may lack one.
}

// RenderedBlock is the formatted output for one file.
type RenderedBlock struct {
	RelPath string
	Text    string
}

// SkippedFile records a file that matched but produced no block.
type SkippedFile struct {
	RelPath string
	Reason  error
}

// Result summarizes a completed run.
type Result struct {
	Rendered []string      // Relative paths written, in output order.
	Skipped  []SkippedFile // Files left out because they could not be read or decoded.
}

// Fence is the code fence marker wrapping each file's content.
const Fence = "```"
