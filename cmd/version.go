// File: cmd/version.go
package cmd

import (
	"repomd/pkg/version"

	"github.com/spf13/cobra"
)

// setVersion wires --version to the build information of this binary.
func setVersion(cmd *cobra.Command) {
	v := version.Get()
	cmd.Version = v.Version
	cmd.SetVersionTemplate(v.String() + "\n")
}
