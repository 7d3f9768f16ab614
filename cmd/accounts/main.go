package main

import (
	"github.com/dicelobby/accounts/internal/cli"
)

func main() {
	cli.Execute()
}
