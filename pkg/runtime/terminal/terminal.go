package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/vspc-reporter/pkg/runtime/terminal/commands"
	"github.com/de-tools/vspc-reporter/pkg/services/vspc"
)

// CLI represents the command-line interface
type CLI struct {
	deps    commands.Deps
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Authenticate commands.AuthFunc
	NewClient    vspc.Factory
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		deps: commands.Deps{
			Authenticate: opts.Authenticate,
			NewClient:    opts.NewClient,
			Output:       opts.Output,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vspc-reporter",
		Short: "Bulk report creation for the service provider console",
	}

	cmd.AddCommand(commands.NewCreateCmd(cli.deps))
	cmd.AddCommand(commands.NewStatusCmd(cli.deps))

	return cmd
}
