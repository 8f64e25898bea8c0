package main

import (
	"os"

	"github.com/kazuma-desu/showmore/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
