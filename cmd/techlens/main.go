package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Error("techlens failed")
		os.Exit(1)
	}
}
