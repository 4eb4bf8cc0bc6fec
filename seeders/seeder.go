package seeders

import (
	"context"
	"log"

	"academy-manager/internal/schema"
	"academy-manager/pkg/config"
	"academy-manager/pkg/database"

	"go.uber.org/zap"
)

// SeedSchema cria as tabelas que faltam e garante o usuário admin.
func SeedSchema(db *database.DB, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Criando o schema e o admin...")

	if err := schema.Initialize(ctx, db, cfg.Auth.AdminPassword, zap.NewNop()); err != nil {
		log.Fatalf("❌ Erro ao criar o schema: %v", err)
	}
	log.Println("✅ Schema pronto!")
}

// SeedCatalog preenche o catálogo de tipos de device.
func SeedCatalog(db *database.DB) {
	ctx := context.Background()
	log.Println("▶️  Preenchendo o catálogo...")

	if err := seedDeviceTypes(ctx, db); err != nil {
		log.Fatalf("❌ Erro ao preencher os tipos de device: %v", err)
	}
	log.Println("✅ Catálogo preenchido!")
}
