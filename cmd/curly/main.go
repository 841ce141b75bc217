package main

import (
	"github.com/timo-cingoez/cURLy/internal/cli"
)

func main() {
	cli.Execute()
}
