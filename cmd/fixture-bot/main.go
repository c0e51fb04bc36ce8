package main

import (
	_ "time/tzdata"

	"github.com/pfrederiksen/fixture-bot/internal/cli"
)

func main() {
	cli.Execute()
}
