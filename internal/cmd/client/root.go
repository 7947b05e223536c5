package client

import (
	"github.com/spf13/cobra"
)

// BaseURLFunc provides the base HTTP API URL (e.g., from env or flag).
type BaseURLFunc func() string

// NewRoot constructs a root Cobra command for the flake client.
// It registers the id and node command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "flake",
		Short: "flake client commands",
	}
	root.AddCommand(NewIDCommand(baseURL))
	root.AddCommand(NewNodeCommand())
	return root
}
