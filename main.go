package main

import (
	"github.com/jaycalderwood/KQL/cmd"
)

func main() {
	cmd.Execute()
}
