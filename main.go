package main

import (
	"os"

	"github.com/Randomblock1/caffeinate2/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
