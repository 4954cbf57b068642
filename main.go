package main

import (
	"log"

	"github.com/ramancoder123/dicideon/internals/config"
	"github.com/ramancoder123/dicideon/internals/initializers"
	"github.com/ramancoder123/dicideon/internals/locations"
	"github.com/ramancoder123/dicideon/internals/routes"
)

func init() {
	initializers.LoadEnvVariables()
	initializers.ConnectToDb()
	initializers.SyncDatabase()
	initializers.StartJanitor()
}

func main() {
	locStore, err := locations.Load(config.GetEnvAsStr("LOCATION_DATA_DIR", "data"))
	if err != nil {
		log.Fatalf("Failed to load location data: %v", err)
	}

	r := routes.SetupRouter(initializers.DB, locStore)
	r.Run()
}
