package main

import (
	"os"

	"dayplan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
