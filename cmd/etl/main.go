package main

import (
	"os"

	"github.com/nimasrn/finance-etl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
