package main

import (
	"log"

	"carteira/cmd"
)

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Close()

	if err := deps.ApiHandler.StartApi(deps.Port); err != nil {
		log.Fatal(err)
	}
}
