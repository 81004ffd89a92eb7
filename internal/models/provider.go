package models

import "fmt"

// Provider identifies one of the supported OAuth providers.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGoogle    Provider = "google"
	ProviderMicrosoft Provider = "microsoft"
)

// Providers lists every supported provider.
var Providers = []Provider{ProviderGitHub, ProviderGoogle, ProviderMicrosoft}

// ParseProvider maps a query-string value onto the closed provider set.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGitHub, ProviderGoogle, ProviderMicrosoft:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown oauth provider %q", s)
}

func (p Provider) String() string {
	return string(p)
}
