package gitrepo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

const (
	envGitUser    = "SHELLCOMMANDER_GIT_USERNAME"
	envGitToken   = "SHELLCOMMANDER_GIT_TOKEN"
	envGHToken    = "GITHUB_TOKEN"
	envGHCLIToken = "GH_TOKEN"
	envSSHAgent   = "SSH_AUTH_SOCK"
	tokenUser     = "x-access-token"
	sshUser       = "git"
)

// credentials resolves clone auth from environment variables. Public HTTPS
// remotes need none, so an unset token yields a nil method.
type credentials struct {
	getenv func(string) string
}

func authForURL(rawURL string) (transport.AuthMethod, error) {
	return credentials{getenv: os.Getenv}.forURL(rawURL)
}

func (c credentials) forURL(rawURL string) (transport.AuthMethod, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, nil
	}

	ep, err := transport.NewEndpoint(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}

	switch ep.Protocol {
	case "http", "https":
		if ep.User != "" && ep.Password != "" {
			return nil, nil
		}
		token := firstNonEmpty(c.getenv(envGitToken), c.getenv(envGHToken), c.getenv(envGHCLIToken))
		if token == "" {
			return nil, nil
		}
		user := firstNonEmpty(c.getenv(envGitUser), ep.User, tokenUser)
		return &http.BasicAuth{Username: strings.TrimSpace(user), Password: token}, nil
	case "ssh":
		if strings.TrimSpace(c.getenv(envSSHAgent)) == "" {
			return nil, nil
		}
		user := firstNonEmpty(ep.User, sshUser)
		auth, err := ssh.NewSSHAgentAuth(user)
		if err != nil {
			return nil, fmt.Errorf("ssh agent: %w", err)
		}
		return auth, nil
	default:
		return nil, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
