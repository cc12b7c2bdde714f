package ignore

import (
	"context"
	"path/filepath"
	"strings"
)

const FileName = ".gitignore"

type Service struct {
	client Client
	files  FileWriter
}

func NewService(client Client, files FileWriter) *Service {
	return &Service{client: client, files: files}
}

// List returns the template names containing filter.
func (s *Service) List(ctx context.Context, filter string) ([]string, error) {
	names, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return names, nil
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(name, filter) {
			out = append(out, name)
		}
	}
	return out, nil
}

func (s *Service) Fetch(ctx context.Context, templates []string) (string, error) {
	cleaned := make([]string, 0, len(templates))
	for _, template := range templates {
		for _, part := range strings.Split(template, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	if len(cleaned) == 0 {
		return "", ErrTemplatesRequired
	}
	return s.client.Fetch(ctx, cleaned)
}

// WriteFile fetches templates into dir/.gitignore and returns the file path.
func (s *Service) WriteFile(ctx context.Context, templates []string, dir string) (string, error) {
	text, err := s.Fetch(ctx, templates)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := s.files.WriteFile(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}
