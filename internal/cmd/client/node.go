package client

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

type nodeInfo struct {
	DatacenterID int64 `json:"datacenterId"`
	WorkerID     int64 `json:"workerId"`
	PID          int   `json:"pid"`
}

// NewNodeCommand constructs the `node` command, which prints the
// coordinates the host resolver derives for this process.
func NewNodeCommand() *cobra.Command {
	return newNodeCommand(nil)
}

func newNodeCommand(resolver id.Resolver) *cobra.Command {
	return &cobra.Command{
		Use:   "node",
		Short: "Show host-derived datacenter and worker ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logpkg.NewLogger(
				logpkg.WithLevel(logpkg.WarnLevel),
				logpkg.WithFormatter(&logpkg.TextFormatter{}),
				logpkg.WithOutput(logpkg.NewWriterOutput(cmd.ErrOrStderr())),
			)
			r := resolver
			if r == nil {
				r = id.NewHostResolver(id.WithResolverLogger(logger))
			}
			dc := r.DatacenterID(id.MaxDatacenterID)
			info := nodeInfo{
				DatacenterID: dc,
				WorkerID:     r.WorkerID(dc, id.MaxWorkerID),
				PID:          os.Getpid(),
			}
			logger.Warn("derived coordinates are not guaranteed unique across hosts; pin them when running more than one instance")
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}
