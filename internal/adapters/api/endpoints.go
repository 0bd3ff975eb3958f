package api

import "strings"

var publicEndpoints = []string{
	"/auth/signin",
	"/auth/create",
	"/wallet/generate",
	"/health",
}

// taskVerbs are the /tasks/{verb}/{account} control endpoints.
var taskVerbs = map[string]struct{}{
	"initialize":    {},
	"start-refresh": {},
	"stop-refresh":  {},
	"clear-state":   {},
}

// IsPublicEndpoint reports whether endpoint may be called while signed out.
func IsPublicEndpoint(endpoint string) bool {
	path := endpointPath(endpoint)
	for _, public := range publicEndpoints {
		if path == public || strings.HasPrefix(path, public) {
			return true
		}
	}

	return false
}

// InferAccount extracts the account an endpoint is scoped to, or "".
func InferAccount(endpoint string) string {
	segments := strings.Split(strings.Trim(endpointPath(endpoint), "/"), "/")
	if len(segments) < 2 {
		return ""
	}

	switch segments[0] {
	case "account", "payments", "balance":
		return segments[1]
	case "tasks":
		if _, ok := taskVerbs[segments[1]]; ok {
			if len(segments) >= 3 {
				return segments[2]
			}
			return ""
		}
		if segments[1] == "statuses" {
			return ""
		}
		return segments[1]
	case "odv":
		if segments[1] == "messages" && len(segments) >= 3 {
			return segments[2]
		}
	}

	return ""
}

func endpointPath(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	return path
}
