package main

import (
	"os"

	"github.com/osvaldoandrade/shellcommander/pkg/shellcommander"
)

func main() {
	os.Exit(shellcommander.Execute())
}
