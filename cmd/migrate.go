package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RestaurantService/internal/infra/storage/migrations"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Миграции базы данных",
	}

	cmd.AddCommand(
		migrateSubcommand(configPath, "up", "Применить новые миграции", migrations.Up),
		migrateSubcommand(configPath, "down", "Откатить последнюю миграцию", migrations.Down),
		migrateSubcommand(configPath, "status", "Показать состояние миграций", migrations.Status),
	)

	return cmd
}

func migrateSubcommand(configPath *string, use, short string, run func(db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.log.Close()

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := run(db); err != nil {
				return err
			}

			a.log.Info("migrate %s: done", use)
			return nil
		},
	}
}
