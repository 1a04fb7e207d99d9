package etag

// Record pairs one endpoint path with the last validator token the provider
// returned for it. This is the only sync-protocol state the service keeps.
type Record struct {
	Endpoint string `validate:"required"`
	ETag     string `validate:"required"`
}
