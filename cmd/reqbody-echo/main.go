package main

import (
	"log"

	"github.com/xy-planning-network/reqbody/server"
)

func main() {
	s, err := server.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := s.Guide(); err != nil {
		s.EmitLogger().Fatal(err.Error(), nil)
	}
}
