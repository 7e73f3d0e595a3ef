// package main wires the volunteerhub backend: configuration, database,
// authorization policy, Kafka event streams, the service layer and the
// Fiber app serving the REST and GraphQL APIs.
package main

import (
	"context"

	"github.com/volunteerhub/backend/config"
	"github.com/volunteerhub/backend/database"
	"github.com/volunteerhub/backend/events/modules/directory"
	gqlschema "github.com/volunteerhub/backend/graphql"
	"github.com/volunteerhub/backend/internal/api"
	"github.com/volunteerhub/backend/internal/kafka"
	"github.com/volunteerhub/backend/internal/policy"
	"github.com/volunteerhub/backend/internal/services"
	"github.com/volunteerhub/backend/internal/store"
	"github.com/volunteerhub/backend/restapi"
	"github.com/volunteerhub/backend/restapi/modules/auth"
)

func main() {
	logger := database.Logger().Sugar()

	cfg := config.Load()
	if cfg.JWTSecret != "" {
		auth.SetJWTSecret(cfg.JWTSecret)
	} else {
		logger.Warnf("JWT_SECRET is unset, using the built-in development secret")
	}

	db := database.InitializeDatabase(cfg)
	st := store.NewArangoStore(db)

	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		logger.Fatalf("Failed to load authorization policy: %v", err)
	}

	var digest services.DigestNotifier
	if len(cfg.KafkaBrokers) > 0 {
		producer := directory.NewDigestProducer(cfg.KafkaBrokers)
		defer producer.Close()
		digest = producer
	}

	orgs := services.NewOrganizationService(st, pol, database.Logger(), digest)
	vols := services.NewVolunteerService(st, pol, database.Logger(), digest)
	donations := services.NewDonationService(st, database.Logger())

	schema, err := gqlschema.CreateSchema(orgs, vols)
	if err != nil {
		logger.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := auth.BootstrapAdmin(ctx, st, cfg); err != nil {
		logger.Warnf("Failed to bootstrap admin: %v", err)
	}

	if len(cfg.KafkaBrokers) > 0 {
		if err := kafka.RunEventProcessor(ctx, cfg.KafkaBrokers, donations); err != nil {
			logger.Warnf("Kafka event processor unavailable: %v", err)
		}
	}

	app := api.NewFiberApp(restapi.Deps{
		Store:         st,
		Organizations: orgs,
		Volunteers:    vols,
		Schema:        schema,
		Config:        cfg,
	})

	logger.Infof("Starting server on port %s", cfg.Port)
	logger.Infof("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
