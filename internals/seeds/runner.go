package seeds

import (
	"context"
	"log"

	"medaid_backend/internals/configs"
	authService "medaid_backend/internals/features/users/auth/service"
	"medaid_backend/internals/seeds/areas"
)

// RunAllSeeds checks the area table and makes sure the superadmin exists.
func RunAllSeeds(ctx context.Context, auth *authService.AuthService, cfg configs.Config) error {
	//* Areas
	table, err := areas.LoadAreaTable(cfg.AreaTable)
	if err != nil {
		return err
	}
	log.Printf("[INFO] area table ok: %d rows", table.Len())

	//* Superadmin
	return auth.SeedSuperAdmin(ctx, cfg.SuperName, cfg.SuperEmail, cfg.SuperPass)
}
