package main

import (
	"os"
	"time"

	"github.com/flexprice/iamport-go/internal/cli"
)

var version = "dev"

func init() {
	time.Local = time.UTC
}

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
