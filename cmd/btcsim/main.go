package main

import (
	"os"

	"github.com/fineflow77/btcpowerlawsimulator/internal/commands"
)

func main() {
	os.Exit(commands.Execute())
}
