package main

import (
	"context"
	"log/slog"
	"os"

	"crmdash/config"
	"crmdash/internal/delivery"
	"crmdash/internal/delivery/http"
	"crmdash/internal/delivery/http/middleware"
	"crmdash/internal/delivery/http/router/handler"
	logs "crmdash/internal/infra/log"
	"crmdash/internal/infra/persistence/badgerstore"
	"crmdash/internal/infra/salesforce"
	"crmdash/internal/infra/synthetic"
	"crmdash/internal/usecase"
	"crmdash/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectClient(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			resumeSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		badgerstore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			badgerstore.NewCredentialRepository,
		),
	)
}

func injectClient() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				salesforce.NewClient,
				fx.ResultTags(`name:"live"`),
			),
			fx.Annotate(
				synthetic.NewClient,
				fx.ResultTags(`name:"synthetic"`),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewDashboardHandler,
			handler.NewRecordHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// resumeSession arms a backend from the stored credential before the first
// request, so a restart does not demand a fresh login.
func resumeSession(ctx context.Context, logger *slog.Logger, uc usecase.SessionUsecase) error {
	state, err := uc.Resume(ctx, "")
	if err != nil {
		return err
	}

	logger.Info("session state at startup",
		slog.String("phase", string(state.Phase)),
		slog.String("mode", string(state.Mode)),
	)

	return nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
