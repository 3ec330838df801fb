package main

import (
	"log"

	"github.com/tickermatch/internal/config"
	"github.com/tickermatch/internal/web"
)

func main() {
	config.LoadEnv()

	server, err := web.NewServer(web.FromEnv())
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
