package main

import (
	"log"

	"github.com/anoixa/content-hub/cmd"
	"github.com/anoixa/content-hub/config"
)

func main() {
	log.Printf("content hub %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
