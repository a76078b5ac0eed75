package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northlake-labs/opcua-server/internal/cli/output"
	grpcapi "github.com/northlake-labs/opcua-server/pkg/adminapi/grpc"
)

var browseCmd = &cobra.Command{
	Use:   "browse <node-id>",
	Short: "List a node's references",
	Long:  `List a node's outgoing and inverse references by its node identifier.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	client, closeFn, err := dialAdmin()
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := client.BrowseReferences(context.Background(), &grpcapi.BrowseReferencesRequest{NodeID: args[0]})
	if err != nil {
		return err
	}

	if resp.Status != "Good" {
		return fmt.Errorf("browse: %s", resp.Status)
	}

	if len(resp.References) == 0 {
		fmt.Println("no references found")
		return nil
	}

	return printer().Print(referenceTable{resp.References})
}

type referenceTable struct {
	refs []grpcapi.ReferenceInfo
}

func (t referenceTable) Headers() []string {
	return []string{"reference type", "target", "direction"}
}

func (t referenceTable) Rows() [][]string {
	rows := make([][]string, len(t.refs))
	for i, r := range t.refs {
		direction := "forward"
		if r.IsInverse {
			direction = "inverse"
		}
		rows[i] = []string{r.ReferenceTypeID, r.TargetID, direction}
	}
	return rows
}

var _ output.TableRenderer = referenceTable{}
