package main

import (
	"os"

	"github.com/dshills/revsent/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
