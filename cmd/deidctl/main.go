package main

import (
	"github.com/NVIDIA/deid-recipes/pkg/cli"
)

func main() {
	cli.Execute()
}
