package main

import (
	"os"

	"github.com/airchains-network/quorum-genesis/cmd/quorum-genesis/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout))
}
