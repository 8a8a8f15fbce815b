package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/vspc-reporter/pkg/models/api"
	"github.com/de-tools/vspc-reporter/pkg/services/auth"
	"github.com/de-tools/vspc-reporter/pkg/services/vspc"
)

type mockClient struct{ mock.Mock }

func (m *mockClient) GetCompanies(ctx context.Context) ([]api.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Company), args.Error(1)
}

func (m *mockClient) GetReports(ctx context.Context) ([]api.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Report), args.Error(1)
}

func (m *mockClient) GetLocations(ctx context.Context, companyID string) ([]api.Location, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Location), args.Error(1)
}

func (m *mockClient) SaveReport(ctx context.Context, payload api.SaveReportRequest) (*api.SaveReportResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SaveReportResult), args.Error(1)
}

func stubAuth(creds *auth.Credentials, err error) AuthFunc {
	return func(_ context.Context, _, _, _ string) (*auth.Credentials, error) {
		return creds, err
	}
}

func testDeps(client vspc.Client, out *bytes.Buffer) Deps {
	return Deps{
		Authenticate: stubAuth(&auth.Credentials{Token: "t", Cookie: "c"}, nil),
		NewClient: func(_ string, _ auth.Credentials) vspc.Client {
			return client
		},
		Output: out,
	}
}

func connArgs(extra ...string) []string {
	return append([]string{"--url", "https://vspc.test", "--login", "admin", "--password", "secret"}, extra...)
}

func TestCreate_DryRunNeverSaves(t *testing.T) {
	client := new(mockClient)
	client.On("GetCompanies", mock.Anything).Return([]api.Company{
		{CompanyID: "1", Name: "Alpha"},
		{CompanyID: "2", Name: "Beta"},
	}, nil)
	client.On("GetReports", mock.Anything).Return([]api.Report{}, nil)

	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs(connArgs("--dry-run"))

	require.NoError(t, cmd.Execute())

	client.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "GetLocations", mock.Anything, mock.Anything)
	assert.Contains(t, out.String(), "Would create: 2")
	assert.Contains(t, out.String(), "Alpha")
	assert.Contains(t, out.String(), "Beta")
}

func TestCreate_UnknownCompanyFails(t *testing.T) {
	client := new(mockClient)
	client.On("GetCompanies", mock.Anything).Return([]api.Company{
		{CompanyID: "1", Name: "Alpha"},
	}, nil)
	client.On("GetReports", mock.Anything).Return([]api.Report{}, nil)

	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs(connArgs("--company", "DoesNotExist"))

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, `company "DoesNotExist" not found`)
	client.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestCreate_CompanyFilterMatchesCaseInsensitive(t *testing.T) {
	client := new(mockClient)
	client.On("GetCompanies", mock.Anything).Return([]api.Company{
		{CompanyID: "1", Name: "Alpha"},
		{CompanyID: "2", Name: "Beta"},
	}, nil)
	// Alpha already has a report; the explicit filter still targets it.
	client.On("GetReports", mock.Anything).Return([]api.Report{
		{Name: "Existing", CompanyID: "1"},
	}, nil)
	client.On("GetLocations", mock.Anything, "1").Return([]api.Location{}, nil)
	client.On("SaveReport", mock.Anything, mock.Anything).
		Return(&api.SaveReportResult{Status: api.SaveStatusSuccess}, nil)

	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs(connArgs("--company", "alpha"))

	require.NoError(t, cmd.Execute())
	client.AssertExpectations(t)
}

func TestCreate_AuthFailureStopsBeforeAPICalls(t *testing.T) {
	client := new(mockClient)

	var out bytes.Buffer
	deps := testDeps(client, &out)
	deps.Authenticate = stubAuth(nil, auth.ErrNoCredentials)

	cmd := NewCreateCmd(deps)
	cmd.SetArgs(connArgs())

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "authentication failed")
	client.AssertNotCalled(t, "GetCompanies", mock.Anything)
	client.AssertNotCalled(t, "GetReports", mock.Anything)
}

func TestCreate_AllCoveredIsSuccess(t *testing.T) {
	client := new(mockClient)
	client.On("GetCompanies", mock.Anything).Return([]api.Company{
		{CompanyID: "1", Name: "Alpha"},
	}, nil)
	client.On("GetReports", mock.Anything).Return([]api.Report{
		{Name: "Existing", CompanyID: "1"},
	}, nil)

	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs(connArgs())

	require.NoError(t, cmd.Execute())
	client.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestCreate_PerCompanyFailureYieldsError(t *testing.T) {
	client := new(mockClient)
	client.On("GetCompanies", mock.Anything).Return([]api.Company{
		{CompanyID: "1", Name: "Alpha"},
		{CompanyID: "2", Name: "Beta"},
	}, nil)
	client.On("GetReports", mock.Anything).Return([]api.Report{}, nil)
	client.On("GetLocations", mock.Anything, mock.Anything).Return([]api.Location{}, nil)
	client.On("SaveReport", mock.Anything, mock.MatchedBy(func(p api.SaveReportRequest) bool {
		return p.Parameters.Companies[0] == "1"
	})).Return(nil, errors.New("boom"))
	client.On("SaveReport", mock.Anything, mock.MatchedBy(func(p api.SaveReportRequest) bool {
		return p.Parameters.Companies[0] == "2"
	})).Return(&api.SaveReportResult{Status: api.SaveStatusSuccess}, nil)

	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs(connArgs())

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "1 of 2")
	// The second company was still processed.
	assert.Contains(t, out.String(), "Beta")
	assert.Contains(t, out.String(), "Failed: 1")
}

func TestCreate_MissingCredentials(t *testing.T) {
	t.Setenv("VSPC_URL", "")
	t.Setenv("VSPC_LOGIN", "")
	t.Setenv("VSPC_PASSWORD", "")

	client := new(mockClient)
	var out bytes.Buffer
	cmd := NewCreateCmd(testDeps(client, &out))
	cmd.SetArgs([]string{"--url", "https://vspc.test"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "required")
}
