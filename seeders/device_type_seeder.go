package seeders

import (
	"context"
	"log"

	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

// true: apaga o catálogo antes de gravar. false: só acrescenta tipos novos.
const fullSyncDeviceTypes = false

func seedDeviceTypes(ctx context.Context, db *database.DB) error {
	log.Println("  - Preenchendo a tabela 'tipos_devices'...")

	typeRepo := repositories.NewDeviceTypeRepository(db, zap.NewNop())
	txManager := repositories.NewTxManager(db)

	return txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		if fullSyncDeviceTypes {
			log.Println("    - Estratégia: reescrita completa")
			if _, err := tx.ExecRaw(ctx, "DELETE FROM tipos_devices"); err != nil {
				return err
			}
		} else {
			log.Println("    - Estratégia: só acrescentar")
		}

		for _, d := range deviceTypesData {
			err := typeRepo.CreateIfMissing(ctx, tx, entities.DeviceType{
				Nome:           d.Nome,
				Categoria:      utils.NullIfEmpty(d.Categoria),
				Descricao:      utils.NullIfEmpty(d.Descricao),
				ParaEmprestimo: d.ParaEmprestimo,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
