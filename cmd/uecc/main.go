package main

import (
	"github.com/athanorlabs/go-uecc/command"
)

func main() {
	command.NewRootCommand().Execute()
}
