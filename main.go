package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/catalog"
)

func main() {
	ingredientsCSV := flag.String("ingredients", "", "path to an ingredients CSV to seed before starting")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	if *ingredientsCSV != "" {
		f, err := os.Open(*ingredientsCSV)
		if err != nil {
			log.Fatalf("error opening ingredients file: %v", err)
		}
		catalogService := catalog.NewCatalogService(catalog.NewCatalogRepository(db))
		loaded, err := catalogService.LoadIngredientsCSV(context.Background(), f)
		f.Close()
		if err != nil {
			log.Fatalf("error loading ingredients: %v", err)
		}
		log.Printf("loaded %d ingredients", loaded)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	if err := app.Listen(fmt.Sprintf(":%s", utils.GetConfig("APP_PORT"))); err != nil {
		log.Fatalf("error starting app: %v", err)
	}
}
