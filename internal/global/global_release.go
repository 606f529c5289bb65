//go:build !debug && !profile

package global

import (
	"io"

	"github.com/spf13/cobra"
)

// RegisterProfiling adds the profiling flags, which only exist in debug and
// profile builds.
func RegisterProfiling(_ *cobra.Command, _ io.Writer) {}
