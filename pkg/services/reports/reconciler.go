package reports

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/de-tools/vspc-reporter/pkg/adapters"
	"github.com/de-tools/vspc-reporter/pkg/models/api"
	"github.com/de-tools/vspc-reporter/pkg/models/domain"
)

// CompanyIndex maps company identifier to the normalized company record.
// Records without a usable identifier are dropped.
func CompanyIndex(companies []api.Company) map[string]domain.Company {
	index := make(map[string]domain.Company, len(companies))
	for _, c := range companies {
		company, ok := adapters.MapAPICompanyToDomain(c)
		if !ok {
			continue
		}
		index[company.ID] = company
	}
	return index
}

// ReportIndex maps company identifier to the names of reports that
// reference it.
func ReportIndex(reports []api.Report) map[string][]string {
	index := make(map[string][]string, len(reports))
	for _, r := range reports {
		report := adapters.MapAPIReportToDomain(r)
		if report.CompanyID == "" {
			continue
		}
		index[report.CompanyID] = append(index[report.CompanyID], report.Name)
	}
	return index
}

// Coverage is the reconciled view of companies against existing reports.
type Coverage struct {
	Companies map[string]domain.Company
	Reports   map[string][]string
}

// Reconcile builds both indexes and logs them at debug level.
func Reconcile(ctx context.Context, companies []api.Company, reports []api.Report) Coverage {
	logger := zerolog.Ctx(ctx)

	cov := Coverage{
		Companies: CompanyIndex(companies),
		Reports:   ReportIndex(reports),
	}

	for id, c := range cov.Companies {
		logger.Debug().Str("company_id", id).Str("name", c.Name).Msg("company discovered")
	}
	for id, names := range cov.Reports {
		name := "Unknown"
		if c, ok := cov.Companies[id]; ok {
			name = c.Name
		}
		logger.Debug().
			Str("company_id", id).
			Str("name", name).
			Strs("reports", names).
			Msg("company has reports")
	}

	return cov
}

// WithoutReports returns the companies whose identifier appears in no
// report, sorted by name so runs are reproducible.
func (c Coverage) WithoutReports() []domain.Company {
	var missing []domain.Company
	for id, company := range c.Companies {
		if _, ok := c.Reports[id]; !ok {
			missing = append(missing, company)
		}
	}
	sortCompanies(missing)
	return missing
}

// Covered returns the companies that already have at least one report,
// sorted by name.
func (c Coverage) Covered() []domain.Company {
	var covered []domain.Company
	for id, company := range c.Companies {
		if _, ok := c.Reports[id]; ok {
			covered = append(covered, company)
		}
	}
	sortCompanies(covered)
	return covered
}

func sortCompanies(companies []domain.Company) {
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].Name != companies[j].Name {
			return companies[i].Name < companies[j].Name
		}
		return companies[i].ID < companies[j].ID
	})
}
