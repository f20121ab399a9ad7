package main

import (
	"log"
	"os"

	"amispark/cmd"
)

func main() {
	// "mailer" runs the standalone mail relay; everything else falls
	// through to the PocketBase booking app and its own CLI.
	if len(os.Args) > 1 && os.Args[1] == "mailer" {
		if err := cmd.StartMailer(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
