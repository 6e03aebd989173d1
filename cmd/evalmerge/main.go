package main

import (
	"github.com/NVIDIA/evalmerge/pkg/cli"
)

func main() {
	cli.Execute()
}
