// Command backup exports or restores the roster as a JSON file.
package main

import (
	"flag"
	"log"
	"os"

	"familywallet/internal/config"
	"familywallet/internal/database"
	"familywallet/internal/repository"
	"familywallet/internal/service"
)

func main() {
	exportPath := flag.String("export", "", "write the roster to this file (use - for stdout)")
	importPath := flag.String("import", "", "replace the roster with the contents of this file")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		log.Fatal("specify exactly one of -export or -import")
	}

	cfg := config.Load()
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	childRepo := repository.NewChildRepository(
		repository.NewMissionRepository(),
		repository.NewPrizeRepository(),
		repository.NewActivityRepository(),
	)
	backup := service.NewBackupService(db, childRepo)

	if *exportPath != "" {
		out := os.Stdout
		if *exportPath != "-" {
			f, err := os.Create(*exportPath)
			if err != nil {
				log.Fatalf("failed to create export file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := backup.Export(out); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		if *exportPath != "-" {
			log.Printf("roster exported to %s", *exportPath)
		}
		return
	}

	f, err := os.Open(*importPath)
	if err != nil {
		log.Fatalf("failed to open import file: %v", err)
	}
	defer f.Close()

	count, err := backup.Import(f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("roster replaced with %d children from %s", count, *importPath)
}
