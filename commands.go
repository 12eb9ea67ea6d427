package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medaid_backend/internals/configs"
	database "medaid_backend/internals/databases"
	areaService "medaid_backend/internals/features/cases/areas/service"
	"medaid_backend/internals/helpers/dbtime"
	helperOSS "medaid_backend/internals/helpers/oss"
	middlewares "medaid_backend/internals/middlewares"
	routes "medaid_backend/internals/route"
	routeDetails "medaid_backend/internals/route/details"
	"medaid_backend/internals/seeds"
	"medaid_backend/internals/seeds/areas"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "medaid",
		Short:         "MedAid donation matching backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
	}
	root.AddCommand(newServeCmd(), newSeedCmd(), newReclassifyCmd())
	return root
}

// bootstrap connects the database and wires every service.
func bootstrap(cfg configs.Config, migrate bool) (*gorm.DB, *routeDetails.Services, error) {
	table, err := areas.LoadAreaTable(cfg.AreaTable)
	if err != nil {
		return nil, nil, err
	}

	db := database.ConnectDB(cfg)
	database.TunePool(db, cfg)
	if migrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
	}

	svc := routeDetails.BuildServices(routeDetails.Deps{
		DB:        db,
		Resolver:  areaService.NewResolver(table),
		Uploader:  helperOSS.NewUploaderFromEnv(cfg.OSSPrefix),
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
	})
	return db, svc, nil
}

/* ====================== serve ====================== */

func newServeCmd() *cobra.Command {
	var noMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.Load()
			db, svc, err := bootstrap(cfg, !noMigrate)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := seeds.RunAllSeeds(cmd.Context(), svc.Auth, cfg); err != nil {
				log.Printf("[WARN] seed failed: %v", err)
			}

			scheduler, err := startReclassifyCron(cfg.Reclassify, svc)
			if err != nil {
				return err
			}
			defer scheduler.Stop()

			return serve(cfg, db, svc)
		},
	}
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "skip AutoMigrate on boot")
	return cmd
}

func serve(cfg configs.Config, db *gorm.DB, svc *routeDetails.Services) error {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg.Timezone)

	routes.SetupRoutes(app, db, svc, cfg.JWTSecret)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}

func startReclassifyCron(spec string, svc *routeDetails.Services) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(dbtime.AppLocation()))
	if spec == "" || spec == "off" {
		log.Println("[INFO] reclassify cron disabled")
		return c, nil
	}
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		res, err := svc.Cases.Reclassify(ctx)
		if err != nil {
			log.Printf("[ERROR] scheduled reclassify failed: %v", err)
			return
		}
		log.Printf("[INFO] scheduled reclassify: scanned=%d updated=%d", res.Scanned, res.Updated)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid RECLASSIFY_CRON %q: %w", spec, err)
	}
	c.Start()
	log.Printf("⏱ reclassify cron scheduled: %s", spec)
	return c, nil
}

/* ====================== seed ====================== */

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate the schema, check the area table and seed the superadmin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.Load()
			db, svc, err := bootstrap(cfg, true)
			if err != nil {
				return err
			}
			defer database.Close(db)
			return seeds.RunAllSeeds(cmd.Context(), svc.Auth, cfg)
		},
	}
}

/* ====================== reclassify ====================== */

func newReclassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify",
		Short: "Recompute the priority of every active case",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.Load()
			db, svc, err := bootstrap(cfg, false)
			if err != nil {
				return err
			}
			defer database.Close(db)

			res, err := svc.Cases.Reclassify(cmd.Context())
			if err != nil {
				return err
			}
			log.Printf("✅ reclassify done: scanned=%d updated=%d", res.Scanned, res.Updated)
			return nil
		},
	}
}
