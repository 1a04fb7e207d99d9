package usecase

import (
	"context"
	"regexp"
)

// TBA endpoint templates. Each has exactly one placeholder; the placeholder
// name doubles as the parameter the builder substitutes, and the raw
// template is the key prefix used for bulk validator lookups.
const (
	EndpointTeamsPage      = "/teams/{page}"
	EndpointEventsYear     = "/events/{year}"
	EndpointDistrictsYear  = "/districts/{year}"
	EndpointEventTeams     = "/event/{event_key}/teams"
	EndpointEventMatches   = "/event/{event_key}/matches"
	EndpointEventRankings  = "/event/{event_key}/rankings"
	EndpointEventAlliances = "/event/{event_key}/alliances"
)

var endpointPlaceholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func buildEndpoint(template, value string) string {
	return endpointPlaceholderRegex.ReplaceAllString(template, value)
}

// FetchResult is the outcome of one conditional GET. NotModified means the
// cached validator still holds and Body is empty.
type FetchResult struct {
	NotModified bool
	Body        []byte
	ETag        string
}

// Fetcher is the transport the orchestrators pull provider payloads
// through. Implementations own retries, auth, and the conditional-GET
// protocol; they know nothing about entity schemas.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint, cachedETag string) (FetchResult, error)
}
