package main

import (
	"github.com/meowcraft/launcher/internal/cli"
)

func main() {
	cli.Execute()
}
