package ignore

import "context"

// Client talks to a gitignore template API.
type Client interface {
	List(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, templates []string) (string, error)
}

type FileWriter interface {
	WriteFile(path string, data []byte) error
}
