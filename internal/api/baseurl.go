package api

import "strings"

const (
	apiPath = "/api/excel"

	// LocalBaseURL is used when running against a backend on this machine or LAN.
	LocalBaseURL = "http://localhost:8080" + apiPath
	// HostedBaseURL is the deployed backend.
	HostedBaseURL = "https://ananas-api-back.onrender.com" + apiPath
)

// ResolveBaseURL picks the backend address: an explicit URL wins, otherwise a
// non-local hostname selects the hosted backend.
func ResolveBaseURL(explicit, hostname string) string {
	if strings.TrimSpace(explicit) != "" {
		return EnsureAPIPath(explicit)
	}
	if !isLocalHost(hostname) {
		return HostedBaseURL
	}
	return LocalBaseURL
}

func isLocalHost(hostname string) bool {
	h := strings.ToLower(strings.TrimSpace(hostname))
	return h == "" || h == "localhost" || h == "127.0.0.1" || strings.HasPrefix(h, "192.168.")
}

// EnsureAPIPath normalises a URL so it ends exactly with /api/excel.
func EnsureAPIPath(raw string) string {
	u := strings.TrimSuffix(strings.TrimSpace(raw), "/")

	if strings.HasSuffix(u, apiPath) {
		return u
	}
	if i := strings.Index(u, apiPath); i != -1 {
		return u[:i+len(apiPath)]
	}
	if strings.HasSuffix(u, "/api") {
		return u + "/excel"
	}
	return u + apiPath
}
