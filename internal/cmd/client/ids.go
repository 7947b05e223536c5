package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rzbill/flake/pkg/id"
)

// NewIDCommand constructs the `id` command group and subcommands.
func NewIDCommand(baseURL BaseURLFunc) *cobra.Command {
	idCmd := &cobra.Command{Use: "id", Short: "Id operations"}
	idCmd.AddCommand(
		newIDNextCommand(baseURL),
		newIDDecodeCommand(),
	)
	return idCmd
}

// newIDNextCommand constructs the `id next` subcommand.
func newIDNextCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Fetch new ids from a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			transport, _ := cmd.Flags().GetString("transport")
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			tr, err := getTransport(transport, baseURL)
			if err != nil {
				return err
			}
			ids, err := tr.Next(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, v := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 1, "Number of ids to fetch")
	cmd.Flags().String("transport", "http", "Transport: http|grpc")
	return cmd
}

type decodedID struct {
	ID id.ID `json:"id"`
	id.Parts
	Time string `json:"time"`
}

// newIDDecodeCommand constructs the `id decode` subcommand. Decoding is
// offline; only the epoch must match the issuing node.
func newIDDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <id>",
		Short: "Split an id into timestamp, datacenter, worker and sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			epoch, _ := cmd.Flags().GetInt64("epoch-ms")
			v, err := id.ParseID(args[0])
			if err != nil {
				return err
			}
			p := id.Decode(v, epoch)
			return printJSON(cmd.OutOrStdout(), decodedID{
				ID:    v,
				Parts: p,
				Time:  p.Time().UTC().Format(time.RFC3339Nano),
			})
		},
	}
	cmd.Flags().Int64("epoch-ms", id.DefaultEpochMs, "Epoch the id was issued against, in unix milliseconds")
	return cmd
}
