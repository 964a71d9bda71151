package main

import (
	"os"

	"github.com/grovetools/jjprompt/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
