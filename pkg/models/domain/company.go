package domain

// Company is a managed tenant in the console, normalized to a single
// string identifier regardless of which field the API delivered it in.
type Company struct {
	ID   string
	Name string
}

// Location is a backup location belonging to a company.
type Location struct {
	ID   string
	Name string
}

// Report is a scheduled reporting job already configured in the console.
type Report struct {
	Name        string
	CompanyID   string
	CompanyName string
}
