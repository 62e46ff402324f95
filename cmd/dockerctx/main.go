package main

import (
	"log"

	"github.com/redhat-openshift-ecosystem/dockerctx/cmd/dockerctx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
