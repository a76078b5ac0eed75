package commands

import (
	"fmt"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/northlake-labs/opcua-server/internal/cli/output"
	"github.com/northlake-labs/opcua-server/pkg/adminapi/auth"
	grpcapi "github.com/northlake-labs/opcua-server/pkg/adminapi/grpc"
)

// dialAdmin connects to the opcuad AddressSpaceAdmin gRPC service at the
// configured --server address, attaching the --token flag (if set) as a
// bearer credential on every call.
func dialAdmin() (grpcapi.AddressSpaceAdminClient, func(), error) {
	if Flags.ServerAddr == "" {
		return nil, nil, fmt.Errorf("no server address configured; pass --server")
	}

	var transportCreds grpc.DialOption
	if Flags.Insecure {
		transportCreds = grpc.WithTransportCredentials(insecure.NewCredentials())
	} else {
		return nil, nil, fmt.Errorf("TLS dialing is not yet supported; pass --insecure")
	}

	cc, err := grpc.NewClient(Flags.ServerAddr,
		transportCreds,
		grpc.WithUnaryInterceptor(auth.UnaryClientInterceptor(Flags.Token)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", Flags.ServerAddr, err)
	}

	client := grpcapi.NewAddressSpaceAdminClient(cc)
	return client, func() { _ = cc.Close() }, nil
}

func outputFormat() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

func printer() *output.Printer {
	format, err := outputFormat()
	if err != nil {
		format = output.FormatTable
	}
	return output.NewPrinter(os.Stdout, format, !Flags.NoColor)
}
