package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/vspc-reporter/pkg/models/domain"
	"github.com/de-tools/vspc-reporter/pkg/runtime/terminal/export"
	"github.com/de-tools/vspc-reporter/pkg/services/reports"
)

type CreateCmd struct {
	conn         connectionFlags
	company      string
	dryRun       bool
	templatePath string
	deps         Deps
}

func NewCreateCmd(deps Deps) *cobra.Command {
	cc := &CreateCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create scheduled reports for companies without one",
		RunE:  cc.run,
	}

	cc.conn.register(cmd)
	cmd.Flags().StringVar(&cc.company, "company", "", "Create a report for this company only")
	cmd.Flags().BoolVar(&cc.dryRun, "dry-run", false, "Show what would be created without creating anything")
	cmd.Flags().StringVar(&cc.templatePath, "template", "", "Path to a report template override file")

	return cmd
}

func (cc *CreateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cc.conn.newLogger(cmd.Context())
	logger := zerolog.Ctx(ctx)

	url, login, password, err := cc.conn.resolve()
	if err != nil {
		return err
	}

	tpl := reports.DefaultTemplate()
	if cc.templatePath != "" {
		tpl, err = reports.LoadTemplate(cc.templatePath)
		if err != nil {
			return err
		}
	}

	creds, err := cc.deps.Authenticate(ctx, url, login, password)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	client := cc.deps.NewClient(url, *creds)

	companies, err := client.GetCompanies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}
	logger.Info().Int("count", len(companies)).Msg("companies retrieved")

	existing, err := client.GetReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	logger.Info().Int("count", len(existing)).Msg("existing reports retrieved")

	cov := reports.Reconcile(ctx, companies, existing)

	var targets []domain.Company
	if cc.company != "" {
		target, ok := findCompany(cov, cc.company)
		if !ok {
			logger.Info().
				Strs("available", companyNames(cov)).
				Msg("known companies")
			return fmt.Errorf("company %q not found", cc.company)
		}
		targets = []domain.Company{target}
	} else {
		targets = cov.WithoutReports()
		logger.Info().
			Int("with_reports", len(cov.Reports)).
			Int("without_reports", len(targets)).
			Msg("coverage computed")
	}

	if len(targets) == 0 {
		logger.Info().Msg("all companies already have reports, nothing to do")
		return nil
	}

	for _, t := range targets {
		logger.Info().Str("company", t.Name).Str("company_id", t.ID).Msg("report pending")
	}

	creator := reports.NewCreator(client, tpl)
	result := creator.CreateAll(ctx, targets, cc.dryRun)

	if err := export.NewReporter(cc.deps.Output).Handle(result); err != nil {
		return err
	}

	if !result.Ok() {
		return fmt.Errorf("failed to create reports for %d of %d companies", len(result.Failed), len(targets))
	}
	return nil
}

func findCompany(cov reports.Coverage, name string) (domain.Company, bool) {
	for _, c := range cov.Companies {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return domain.Company{}, false
}

func companyNames(cov reports.Coverage) []string {
	names := make([]string, 0, len(cov.Companies))
	for _, c := range cov.Companies {
		names = append(names, c.Name)
	}
	return names
}
