package shellcommander

import "github.com/osvaldoandrade/shellcommander/internal/cli"

// Execute runs the shellcommander CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
