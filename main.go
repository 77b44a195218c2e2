package main

import (
	"os"

	"github.com/rami3l/loxvm/cmd"
)

func main() { os.Exit(cmd.Execute(cmd.App())) }
