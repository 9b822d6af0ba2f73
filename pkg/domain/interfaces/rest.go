package interfaces

import "context"

// RESTClient reads collections from the Testray REST backend
type RESTClient interface {
	// Get fetches path, relative to the backend base URL, and returns the raw body
	Get(ctx context.Context, path string) ([]byte, error)
}
