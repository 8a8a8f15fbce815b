package registry

// Profile is a stored console endpoint with its login.
type Profile struct {
	URL      string
	Login    string
	Password string
}

type ProfileRegistry interface {
	GetProfiles() ([]string, error)
	GetProfile(name string) (*Profile, error)
}
