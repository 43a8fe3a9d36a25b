package main

import (
	"arenacustoms/internal/cli"
	applog "arenacustoms/internal/log"
)

func main() {
	applog.SetService("catalogctl")
	cli.Execute()
}
