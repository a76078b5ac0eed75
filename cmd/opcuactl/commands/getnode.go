package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northlake-labs/opcua-server/internal/cli/output"
	grpcapi "github.com/northlake-labs/opcua-server/pkg/adminapi/grpc"
)

var getNodeCmd = &cobra.Command{
	Use:   "get-node <node-id>",
	Short: "Fetch a node's head attributes",
	Long: `Fetch a node's head attributes (node class, browse name, display name,
description, reference count) by its "ns=<index>;i=<id>" or
"ns=<index>;s=<id>" identifier.`,
	Args: cobra.ExactArgs(1),
	RunE: runGetNode,
}

func runGetNode(cmd *cobra.Command, args []string) error {
	client, closeFn, err := dialAdmin()
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := client.GetNode(context.Background(), &grpcapi.GetNodeRequest{NodeID: args[0]})
	if err != nil {
		return err
	}

	if resp.Status != "Good" {
		return fmt.Errorf("get-node: %s", resp.Status)
	}

	return printer().Print(getNodeRow{resp})
}

type getNodeRow struct {
	*grpcapi.GetNodeResponse
}

func (r getNodeRow) Headers() []string {
	return []string{"node class", "browse name", "display name", "description", "references"}
}

func (r getNodeRow) Rows() [][]string {
	return [][]string{{
		r.NodeClass,
		r.BrowseName,
		r.DisplayName,
		r.Description,
		fmt.Sprintf("%d", r.ReferenceCount),
	}}
}

var _ output.TableRenderer = getNodeRow{}
