// Package commands implements opcuactl's CLI surface: a remote-management
// client for the AddressSpaceAdmin gRPC service exposed by opcuad.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Flags holds the global flag values shared by every subcommand.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ServerAddr string
	Token      string
	Output     string
	NoColor    bool
	Insecure   bool
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opcuactl",
	Short: "opcuactl - remote management client for opcuad",
	Long: `opcuactl is the command-line client for inspecting and managing a
running opcuad server's address space through its AddressSpaceAdmin
gRPC service.

Use "opcuactl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Flags.ServerAddr, _ = cmd.Flags().GetString("server")
		Flags.Token, _ = cmd.Flags().GetString("token")
		Flags.Output, _ = cmd.Flags().GetString("output")
		Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		Flags.Insecure, _ = cmd.Flags().GetBool("insecure")
	},
}

// Execute adds all child commands to the root command and runs it.
// Called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("server", "localhost:4840", "opcuad admin gRPC address")
	rootCmd.PersistentFlags().String("token", "", "bearer token for authentication")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Bool("insecure", true, "dial the admin server without TLS")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getNodeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(registerNamespaceCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
