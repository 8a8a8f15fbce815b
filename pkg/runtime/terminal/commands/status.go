package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/vspc-reporter/pkg/runtime/terminal/export"
	"github.com/de-tools/vspc-reporter/pkg/services/reports"
)

type StatusCmd struct {
	conn connectionFlags
	deps Deps
}

// NewStatusCmd reports coverage without changing anything: which
// companies already have a report and which do not.
func NewStatusCmd(deps Deps) *cobra.Command {
	sc := &StatusCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show report coverage per company",
		RunE:  sc.run,
	}

	sc.conn.register(cmd)
	return cmd
}

func (sc *StatusCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := sc.conn.newLogger(cmd.Context())

	url, login, password, err := sc.conn.resolve()
	if err != nil {
		return err
	}

	creds, err := sc.deps.Authenticate(ctx, url, login, password)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	client := sc.deps.NewClient(url, *creds)

	companies, err := client.GetCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}
	existing, err := client.GetReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	cov := reports.Reconcile(ctx, companies, existing)
	return export.NewCoverageReporter(sc.deps.Output).Handle(cov)
}
