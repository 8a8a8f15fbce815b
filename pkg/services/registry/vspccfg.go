package registry

import (
	"fmt"

	"gopkg.in/ini.v1"
)

type cfgRegistry struct {
	cfg *ini.File
}

// NewProfileRegistry loads console profiles from an ini file, one section
// per console with url/login/password keys.
func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(name string) (*Profile, error) {
	section := cr.cfg.Section(name)
	if section == nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		URL:      section.Key("url").String(),
		Login:    section.Key("login").String(),
		Password: section.Key("password").String(),
	}, nil
}
