package main

import (
	"os"

	"github.com/xiaobogaga/charon/compiler/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
