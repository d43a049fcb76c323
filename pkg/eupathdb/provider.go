package eupathdb

import (
	"fmt"
	"strings"
)

// Each EuPathDB site mounts its WDK service under a short webapp path that
// is not always the site's own name. Closed set, fixed at compile time.
var providerPrefixes = map[string]string{
	"amoebadb":        "amoeba",
	"cryptodb":        "cryptodb",
	"fungidb":         "fungidb",
	"giardiadb":       "giardiadb",
	"hostdb":          "hostdb",
	"microbiomedb":    "mbio",
	"microsporidiadb": "micro",
	"orthomcl":        "orthomcl",
	"piroplasmadb":    "piro",
	"plasmodb":        "plasmo",
	"schistodb":       "schisto",
	"toxodb":          "toxo",
	"trichdb":         "trichdb",
	"tritrypdb":       "tritrypdb",
	"vectorbase":      "vectorbase",
}

// ResolvePrefix maps a provider name (case-insensitive, e.g.
// "MicrosporidiaDB") to the URL path segment its POST service lives under.
func ResolvePrefix(provider string) (string, error) {
	prefix, ok := providerPrefixes[strings.ToLower(provider)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return prefix, nil
}
