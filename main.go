// Package main is the entry point of the vidpool command.
package main

import (
	"github.com/samber/lo"
	"github.com/vidpool/vidpool/cmd"
	"github.com/vidpool/vidpool/config"
	"github.com/vidpool/vidpool/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
