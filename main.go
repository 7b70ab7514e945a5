package main

import (
	"os"

	"github.com/thellimist/docstrap/cmd"
)

var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
