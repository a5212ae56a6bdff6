package main

import (
	"fmt"

	"gearbox/cmd"
)

var (
	version = "dev"
	commit  = "dirty"
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
