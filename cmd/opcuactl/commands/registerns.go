package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northlake-labs/opcua-server/internal/cli/prompt"
	grpcapi "github.com/northlake-labs/opcua-server/pkg/adminapi/grpc"
)

var (
	registerNamespaceURI         string
	registerNamespaceDescription string
	registerNamespaceForce       bool
)

var registerNamespaceCmd = &cobra.Command{
	Use:   "register-namespace <index>",
	Short: "Record an external namespace registration",
	Long: `Record the URI and description of an external namespace index with
the running opcuad server's admin surface.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegisterNamespace,
}

func init() {
	registerNamespaceCmd.Flags().StringVar(&registerNamespaceURI, "uri", "", "namespace URI (required)")
	registerNamespaceCmd.Flags().StringVar(&registerNamespaceDescription, "description", "", "namespace description")
	registerNamespaceCmd.Flags().BoolVarP(&registerNamespaceForce, "force", "y", false, "skip confirmation")
	_ = registerNamespaceCmd.MarkFlagRequired("uri")
}

func runRegisterNamespace(cmd *cobra.Command, args []string) error {
	var index uint32
	if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
		return fmt.Errorf("invalid namespace index %q: %w", args[0], err)
	}

	confirmed, err := prompt.ConfirmWithForce(
		fmt.Sprintf("Register namespace %d (%s)?", index, registerNamespaceURI), registerNamespaceForce)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil
		}
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	client, closeFn, err := dialAdmin()
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := client.RegisterExternalNamespace(context.Background(), &grpcapi.RegisterExternalNamespaceRequest{
		NamespaceIndex: index,
		URI:            registerNamespaceURI,
		Description:    registerNamespaceDescription,
	})
	if err != nil {
		return err
	}

	if resp.Status != "Good" {
		return fmt.Errorf("register-namespace: %s", resp.Status)
	}

	printer().Success(fmt.Sprintf("namespace %d registered", index))
	return nil
}
