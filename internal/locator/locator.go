package locator

import (
	"regexp"
	"strings"
)

var (
	// sshPattern matches git@ssh.dev.azure.com:v3/{org}/{project}/{repo}.
	sshPattern = regexp.MustCompile(`^git@ssh\.dev\.azure\.com:v3/([^/]+)/([^/]+)/([^/]+)$`)
	// httpsPattern matches https://{principal}@dev.azure.com/{org}/{project}/_git/{repo}.
	httpsPattern = regexp.MustCompile(`^https://([^@]+)@dev\.azure\.com/([^/]+)/([^/]+)/_git/([^/]+)$`)
)

// Coordinates address a repository on Azure DevOps.
type Coordinates struct {
	Organization string
	Project      string
	Repository   string
}

// String returns org/project/repo.
func (c Coordinates) String() string {
	return c.Organization + "/" + c.Project + "/" + c.Repository
}

// Parse extracts repository coordinates from an Azure DevOps remote URL.
// The SSH form is tried before the HTTPS form. The whole string must match;
// anything else (trailing slashes, extra segments, other hosts) returns false.
//
// The principal in front of the HTTPS host is ignored, even when it differs
// from the organization segment of the path.
func Parse(url string) (Coordinates, bool) {
	if m := sshPattern.FindStringSubmatch(url); m != nil {
		return newCoordinates(m[1], m[2], m[3]), true
	}
	if m := httpsPattern.FindStringSubmatch(url); m != nil {
		return newCoordinates(m[2], m[3], m[4]), true
	}
	return Coordinates{}, false
}

func newCoordinates(org, project, repo string) Coordinates {
	return Coordinates{
		Organization: strings.TrimSpace(org),
		Project:      strings.TrimSpace(project),
		Repository:   strings.TrimSpace(repo),
	}
}
