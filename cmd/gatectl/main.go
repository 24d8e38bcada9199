package main

import (
	"github.com/openfest/gatekeeper/internal/cli"
)

func main() {
	cli.Execute()
}
