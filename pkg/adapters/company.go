package adapters

import (
	"github.com/de-tools/vspc-reporter/pkg/models/api"
	"github.com/de-tools/vspc-reporter/pkg/models/domain"
)

// MapAPICompanyToDomain normalizes a company record. The console reports
// the identifier under companyId, id or instanceUid depending on version
// and endpoint; the first non-empty one wins, in that order. A company
// with no usable identifier maps to ok=false and must be skipped.
func MapAPICompanyToDomain(c api.Company) (domain.Company, bool) {
	id := firstID(c.CompanyID, c.ID, c.InstanceUID)
	if id == "" {
		return domain.Company{}, false
	}

	name := c.Name
	if name == "" {
		name = "Unknown"
	}

	return domain.Company{ID: id, Name: name}, true
}

func MapAPIReportToDomain(r api.Report) domain.Report {
	return domain.Report{
		Name:        r.Name,
		CompanyID:   string(r.CompanyID),
		CompanyName: r.CompanyName,
	}
}

// MapAPILocationToDomain tolerates locationId or id, same pattern as the
// company identifier. ok=false when neither is present.
func MapAPILocationToDomain(l api.Location) (domain.Location, bool) {
	id := firstID(l.LocationID, l.ID)
	if id == "" {
		return domain.Location{}, false
	}
	return domain.Location{ID: id, Name: l.Name}, true
}

func firstID(candidates ...api.ID) string {
	for _, c := range candidates {
		if c != "" {
			return string(c)
		}
	}
	return ""
}
