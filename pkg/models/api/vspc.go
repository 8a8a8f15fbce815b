package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an entity identifier as the console emits it. Depending on the
// endpoint the same identifier arrives as a JSON string or a JSON number,
// so it decodes both and keeps the canonical string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier is neither string nor number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Company as returned by /uiapi/Company/GetCompanyList. The identifier
// field name varies between console versions, hence the three candidates.
type Company struct {
	CompanyID   ID     `json:"companyId"`
	ID          ID     `json:"id"`
	InstanceUID ID     `json:"instanceUid"`
	Name        string `json:"name"`
}

// Report as returned by /uiapi/Report/GetReports.
type Report struct {
	Name        string `json:"name"`
	CompanyID   ID     `json:"companyID"`
	CompanyName string `json:"companyName"`
}

// Location as returned by /uiapi/Location/GetLocations.
type Location struct {
	LocationID ID     `json:"locationId"`
	ID         ID     `json:"id"`
	Name       string `json:"name"`
}

type GetLocationsRequest struct {
	CompanyID string `json:"companyId"`
}

// SaveReportRequest is the /uiapi/Report/Save payload.
type SaveReportRequest struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  ReportParameters `json:"parameters"`
	Schedule    ReportSchedule   `json:"schedule"`
}

type ReportParameters struct {
	AccessMode                string      `json:"accessMode"`
	AggregationMode           string      `json:"aggregationMode"`
	Companies                 []string    `json:"companies"`
	Locations                 []string    `json:"locations"`
	RPOInterval               RPOInterval `json:"rpoInterval"`
	ExcludeMask               string      `json:"excludeMask"`
	GroupBy                   int         `json:"groupBy"`
	IncludeCompaniesDetails   bool        `json:"includeCompaniesDetails"`
	AllCompaniesAndNewlyAdded bool        `json:"allCompaniesAndNewlyAdded"`
	IncludeResellerCompanies  bool        `json:"includeResellerCompanies"`
	EmailOptions              string      `json:"emailOptions"`
	OperationModeFilter       []int       `json:"operationModeFilter"`
	ManagementTypeFilter      []int       `json:"managementTypeFilter"`
	GuestOSFilter             []int       `json:"guestOsFilter"`
}

type RPOInterval struct {
	Number int    `json:"number"`
	Period string `json:"period"`
}

type ReportSchedule struct {
	Type       string          `json:"type"`
	Daily      DailySchedule   `json:"daily"`
	Monthly    MonthlySchedule `json:"monthly"`
	TimeZoneID string          `json:"timeZoneId"`
}

type DailySchedule struct {
	Time string   `json:"time"`
	Kind string   `json:"kind"`
	Days []string `json:"days"`
}

type MonthlySchedule struct {
	Time      string   `json:"time"`
	Week      string   `json:"week"`
	Day       string   `json:"day"`
	DayNumber int      `json:"dayNumber"`
	Months    []string `json:"months"`
}

// SaveReportResult is the `data` object of a Report/Save response.
type SaveReportResult struct {
	Status string `json:"status"`
}

// SaveStatusSuccess is the status marker the console sets on a
// successfully persisted report.
const SaveStatusSuccess = "success"
