package main

import (
	"context"
	"flag"
	"log"

	"academy-manager/pkg/config"
	"academy-manager/pkg/database"
	"academy-manager/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 SEEDERS (preenchimento do banco)            ")
	log.Println("======================================================")

	runSchema := flag.Bool("schema", false, "Criar as tabelas e o usuário admin")
	runCatalog := flag.Bool("catalog", false, "Preencher o catálogo de tipos de device")
	runAll := flag.Bool("all", false, "Rodar todos os seeders (equivale a -schema -catalog)")

	flag.Parse()

	if !*runSchema && !*runCatalog && !*runAll {
		log.Println("❌ Nenhum seeder selecionado.")
		log.Println("")
		log.Println("Flags disponíveis:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Exemplos:")
		log.Println("  go run ./seeders/cmd/seed -schema")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Banco:", cfg.Database.Type)
	db, err := database.Open(context.Background(), cfg.Database.Connection())
	if err != nil {
		log.Fatalf("❌ Não foi possível conectar ao banco: %v", err)
	}
	defer db.Close()

	log.Println("======================================================")

	// o catálogo depende das tabelas
	if *runAll || *runSchema {
		seeders.SeedSchema(db, cfg)
		log.Println("======================================================")
	}

	if *runAll || *runCatalog {
		seeders.SeedCatalog(db)
		log.Println("======================================================")
	}

	log.Println("✅ Seeders concluídos.")
	log.Println("======================================================")
}
