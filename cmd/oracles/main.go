package main

import (
	"github.com/gerreth/udacity-flight-surety/cmd/oracles/cmd"
)

func main() {
	cmd.Execute()
}
