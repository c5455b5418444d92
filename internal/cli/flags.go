package cli

import "siderunner/internal/config"

// Flags holds command-line flags
type Flags struct {
	BaseURL    string
	TestPath   string
	NameFilter string
	Browser    string
	Headed     bool
	FailFast   bool
	Verbose    bool
	TestCases  bool
	OpenFaills bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		BaseURL:    f.BaseURL,
		TestPath:   f.TestPath,
		NameFilter: f.NameFilter,
		Browser:    f.Browser,
		Headed:     f.Headed,
		FailFast:   f.FailFast,
		Verbose:    f.Verbose,
		TestCases:  f.TestCases,
		OpenFaills: f.OpenFaills,
	}
}
