package main

import (
	"os"

	"github.com/junaidrashid-git/storefront/cli"
)

func main() {
	os.Exit(cli.Execute())
}
