package api

// Config holds the API server settings.
type Config struct {
	// ListenAddr is the address the server listens on, e.g. ":8080".
	ListenAddr string
}
