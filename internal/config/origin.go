package config

import (
	"net/url"
	"strings"
)

// LocalBackendOrigin is where a backend started next to a local static file
// server (or a file:// page) is expected to listen.
const LocalBackendOrigin = "http://127.0.0.1:5000"

// OriginInputs is everything the base-origin rules look at.
type OriginInputs struct {
	// Location is the address the client is "opened from" (a page URL).
	Location string
	// DeployedOrigin is a known production origin; empty means none.
	DeployedOrigin string
	// Override is an explicit override (--api flag / api config key). It applies
	// after the location's own ?api= query parameter.
	Override string
}

type originRule struct {
	name  string
	apply func(in OriginInputs, loc *url.URL) (string, bool)
}

// Precedence: later rules override earlier ones when they apply.
//  1. same-origin default
//  2. known deployed origin
//  3. local loopback detection
//  4. explicit override (?api= on the location, then Override)
var originRules = []originRule{
	{name: "same-origin", apply: sameOrigin},
	{name: "deployed", apply: deployedOrigin},
	{name: "loopback", apply: loopbackOrigin},
	{name: "query", apply: queryOverride},
	{name: "override", apply: explicitOverride},
}

// ResolveBaseOrigin applies every rule in order; the last applicable one wins.
// It also returns the name of that rule for display.
func ResolveBaseOrigin(in OriginInputs) (origin string, rule string) {
	loc, _ := url.Parse(strings.TrimSpace(in.Location))
	for _, r := range originRules {
		if v, ok := r.apply(in, loc); ok {
			origin = v
			rule = r.name
		}
	}
	return origin, rule
}

func sameOrigin(_ OriginInputs, loc *url.URL) (string, bool) {
	if loc == nil || loc.Scheme == "" || loc.Scheme == "file" || loc.Host == "" {
		return "", true
	}
	return loc.Scheme + "://" + loc.Host, true
}

func deployedOrigin(in OriginInputs, _ *url.URL) (string, bool) {
	v := trimOrigin(in.DeployedOrigin)
	return v, v != ""
}

func loopbackOrigin(_ OriginInputs, loc *url.URL) (string, bool) {
	if loc == nil {
		return "", false
	}
	if loc.Scheme == "file" {
		return LocalBackendOrigin, true
	}
	host := loc.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return "", false
	}
	if loc.Port() == "5500" {
		return LocalBackendOrigin, true
	}
	return "", false
}

func queryOverride(_ OriginInputs, loc *url.URL) (string, bool) {
	if loc == nil {
		return "", false
	}
	v := trimOrigin(loc.Query().Get("api"))
	return v, v != ""
}

func explicitOverride(in OriginInputs, _ *url.URL) (string, bool) {
	v := trimOrigin(in.Override)
	return v, v != ""
}

func trimOrigin(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "/")
}
