package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/vspc-reporter/pkg/adapters"
	"github.com/de-tools/vspc-reporter/pkg/models/api"
	"github.com/de-tools/vspc-reporter/pkg/models/domain"
	"github.com/de-tools/vspc-reporter/pkg/services/vspc"
)

// Creator provisions report jobs for companies, one save call each.
type Creator struct {
	client vspc.Client
	tpl    Template
	now    func() time.Time
}

func NewCreator(client vspc.Client, tpl Template) *Creator {
	return &Creator{client: client, tpl: tpl, now: time.Now}
}

// CreateAll walks the target companies and creates a report for each.
// A failing company is recorded and the walk continues; in dry-run mode
// no console call is made at all and every target counts as a would-be
// success.
func (c *Creator) CreateAll(ctx context.Context, companies []domain.Company, dryRun bool) domain.RunResult {
	logger := zerolog.Ctx(ctx)
	result := domain.RunResult{DryRun: dryRun}

	for i, company := range companies {
		logger.Info().
			Int("n", i+1).
			Int("total", len(companies)).
			Str("company", company.Name).
			Str("company_id", company.ID).
			Msg("processing company")

		if dryRun {
			logger.Info().Str("company", company.Name).Msg("dry run, skipping report creation")
			result.Created = append(result.Created, domain.CompanyResult{
				Company:    company,
				ReportName: c.reportName(company),
			})
			continue
		}

		reportName, err := c.createOne(ctx, company)
		if err != nil {
			logger.Error().Err(err).Str("company", company.Name).Msg("report creation failed")
			result.Failed = append(result.Failed, domain.CompanyResult{Company: company, Err: err})
			continue
		}

		logger.Info().Str("company", company.Name).Str("report", reportName).Msg("report created")
		result.Created = append(result.Created, domain.CompanyResult{
			Company:    company,
			ReportName: reportName,
		})
	}

	return result
}

func (c *Creator) createOne(ctx context.Context, company domain.Company) (string, error) {
	logger := zerolog.Ctx(ctx)

	rawLocations, err := c.client.GetLocations(ctx, company.ID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve locations: %w", err)
	}

	var locationIDs []string
	var locationNames []string
	for _, raw := range rawLocations {
		loc, ok := adapters.MapAPILocationToDomain(raw)
		if !ok {
			continue
		}
		locationIDs = append(locationIDs, loc.ID)
		locationNames = append(locationNames, loc.Name)
	}
	if len(locationNames) > 0 {
		logger.Debug().
			Str("company", company.Name).
			Str("locations", strings.Join(locationNames, ", ")).
			Msg("resolved company locations")
	}

	payload := c.buildRequest(company, locationIDs)

	saved, err := c.client.SaveReport(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("save call failed: %w", err)
	}
	if saved.Status != api.SaveStatusSuccess {
		return "", fmt.Errorf("console rejected report: status %q", saved.Status)
	}

	return payload.Name, nil
}

func (c *Creator) reportName(company domain.Company) string {
	return fmt.Sprintf("%s - %s - %s", c.tpl.NamePrefix, company.Name, c.now().Format("20060102"))
}

func (c *Creator) buildRequest(company domain.Company, locationIDs []string) api.SaveReportRequest {
	if locationIDs == nil {
		// The console wants an empty array, not null.
		locationIDs = []string{}
	}

	return api.SaveReportRequest{
		Type:        c.tpl.ReportType,
		Name:        c.reportName(company),
		Description: fmt.Sprintf("Auto-created for %s at %s", company.Name, c.now().Format("02/01/2006 15:04")),
		Parameters: api.ReportParameters{
			AccessMode:                "public",
			AggregationMode:           "singleCompany",
			Companies:                 []string{company.ID},
			Locations:                 locationIDs,
			RPOInterval:               api.RPOInterval{Number: 1, Period: "day"},
			ExcludeMask:               "",
			GroupBy:                   1,
			IncludeCompaniesDetails:   false,
			AllCompaniesAndNewlyAdded: false,
			IncludeResellerCompanies:  false,
			EmailOptions:              c.tpl.EmailOptions,
			OperationModeFilter:       []int{-1},
			ManagementTypeFilter:      []int{-1},
			GuestOSFilter:             []int{0, 1, 2},
		},
		Schedule: c.tpl.schedule(),
	}
}
