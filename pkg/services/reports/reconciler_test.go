package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/vspc-reporter/pkg/models/api"
)

func TestReconcile_SetDifference(t *testing.T) {
	companies := []api.Company{
		{CompanyID: "1", Name: "Alpha"},
		{CompanyID: "2", Name: "Beta"},
		{CompanyID: "3", Name: "Gamma"},
	}
	existing := []api.Report{
		{Name: "Report B", CompanyID: "2", CompanyName: "Beta"},
	}

	cov := Reconcile(context.Background(), companies, existing)

	missing := cov.WithoutReports()
	require.Len(t, missing, 2)
	assert.Equal(t, "Alpha", missing[0].Name)
	assert.Equal(t, "Gamma", missing[1].Name)

	covered := cov.Covered()
	require.Len(t, covered, 1)
	assert.Equal(t, "Beta", covered[0].Name)
}

func TestReconcile_AllCovered(t *testing.T) {
	companies := []api.Company{{CompanyID: "1", Name: "Alpha"}}
	existing := []api.Report{
		{Name: "Report A1", CompanyID: "1"},
		{Name: "Report A2", CompanyID: "1"},
	}

	cov := Reconcile(context.Background(), companies, existing)

	assert.Empty(t, cov.WithoutReports())
	assert.Equal(t, []string{"Report A1", "Report A2"}, cov.Reports["1"])
}

func TestReconcile_ReportForUnknownCompany(t *testing.T) {
	companies := []api.Company{{CompanyID: "1", Name: "Alpha"}}
	existing := []api.Report{{Name: "Orphan", CompanyID: "99"}}

	cov := Reconcile(context.Background(), companies, existing)

	missing := cov.WithoutReports()
	require.Len(t, missing, 1)
	assert.Equal(t, "Alpha", missing[0].Name)
}

func TestCompanyIndex_SkipsRecordsWithoutID(t *testing.T) {
	index := CompanyIndex([]api.Company{
		{Name: "No ID"},
		{InstanceUID: "uid-9", Name: "Via UID"},
	})

	require.Len(t, index, 1)
	assert.Equal(t, "Via UID", index["uid-9"].Name)
}

func TestReportIndex_SkipsReportsWithoutCompany(t *testing.T) {
	index := ReportIndex([]api.Report{
		{Name: "Unassigned"},
		{Name: "Assigned", CompanyID: "3"},
	})

	require.Len(t, index, 1)
	assert.Equal(t, []string{"Assigned"}, index["3"])
}

func TestWithoutReports_SortedByName(t *testing.T) {
	companies := []api.Company{
		{CompanyID: "9", Name: "Zeta"},
		{CompanyID: "5", Name: "Alpha"},
		{CompanyID: "7", Name: "Mid"},
	}

	cov := Reconcile(context.Background(), companies, nil)

	missing := cov.WithoutReports()
	require.Len(t, missing, 3)
	assert.Equal(t, "Alpha", missing[0].Name)
	assert.Equal(t, "Mid", missing[1].Name)
	assert.Equal(t, "Zeta", missing[2].Name)
}
