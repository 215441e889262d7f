package useragent

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/ua-parser/uap-go/uaparser"
)

// OS describes the operating system reported by an identity string.
type OS struct {
	Family string
	Major  int
	Minor  int
}

// Agent is the result of base parsing, before alias resolution.
type Agent struct {
	Family  string
	Version Version
	OS      OS
}

// baseParser loads the bundled ua-parser definitions once. Parser is safe
// for concurrent use.
var baseParser = sync.OnceValue(func() *uaparser.Parser {
	return uaparser.NewFromSaved()
})

// webViewWrappers matches iOS browsers that render through the system web
// view. Removing the token lets the underlying engine be detected instead.
var webViewWrappers = regexp.MustCompile(`(CriOS|OPiOS)/\d+\.\d+\.\d+\.\d+|FxiOS/\d+\.\d+`)

// stripWebViewWrappers removes the first embedded-engine wrapper token.
func stripWebViewWrappers(ua string) string {
	loc := webViewWrappers.FindStringIndex(ua)
	if loc == nil {
		return ua
	}
	return ua[:loc[0]] + ua[loc[1]:]
}

// ParseAgent performs base parsing of an identity string with the ua-parser
// definitions. It never fails: unrecognised input yields the "Other" family
// at version 0.0.0.
func ParseAgent(ua string) Agent {
	client := baseParser().Parse(ua)

	agent := Agent{Family: "Other", OS: OS{Family: "Other"}}
	if client.UserAgent != nil && client.UserAgent.Family != "" {
		agent.Family = client.UserAgent.Family
		agent.Version = Version{
			Major: atoi(client.UserAgent.Major),
			Minor: atoi(client.UserAgent.Minor),
			Patch: atoi(client.UserAgent.Patch),
		}
	}
	if client.Os != nil && client.Os.Family != "" {
		agent.OS = OS{
			Family: client.Os.Family,
			Major:  atoi(client.Os.Major),
			Minor:  atoi(client.Os.Minor),
		}
	}
	return agent
}

// atoi parses a version component, treating empty or non-numeric input as 0.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
