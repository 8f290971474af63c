package main

import (
	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/pgbranch/cmd"
)

// init configures the initial logging level for pgbranch.
//
// It sets logrus to InfoLevel by default, ensuring basic operational logs
// are visible unless overridden by flags like --debug or --log-level in cmd.
func init() {
	logrus.SetLevel(logrus.InfoLevel)
}

// main serves as the entry point for the pgbranch application.
//
// It delegates execution to the cmd package, which handles CLI setup,
// flag parsing, and the container lifecycle commands.
func main() {
	cmd.Execute()
}
