package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/turjubaan/turjubaan/app"
)

func main() {
	// Pull in a .env file when present; the environment wins otherwise.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env file")
	}

	a, err := app.NewApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	a.Run()
}
