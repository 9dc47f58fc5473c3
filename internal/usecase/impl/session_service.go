// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crmdash/config"
	deliverycontext "crmdash/internal/delivery/context"
	"crmdash/internal/domain/entity"
	domainerrors "crmdash/internal/domain/errors"
	"crmdash/internal/domain/repository"
	"crmdash/internal/domain/service"
	infraauth "crmdash/internal/infra/auth"
	"crmdash/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const dashboardListLimit = 100

// SessionServiceParams holds dependencies for the session service, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	CredRepo repository.CredentialRepository
	Live     service.CRMClient `name:"live"`
	Synth    service.CRMClient `name:"synthetic"`
}

// sessionService implements the SessionUsecase interface. It owns its two
// clients as injected dependencies and holds references typed only to the
// CRMClient interface, never to a concrete backend.
type sessionService struct {
	cfg      *config.Config
	logger   *slog.Logger
	credRepo repository.CredentialRepository
	live     service.CRMClient
	synth    service.CRMClient

	now func() time.Time

	mu     sync.Mutex
	state  entity.SessionState
	active service.CRMClient

	// Overlapping Refresh calls coalesce onto one in-flight cycle. The
	// original design left concurrent refreshes unguarded; serializing
	// them here is a deliberate hardening.
	refreshGroup singleflight.Group
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		cfg:      params.Config,
		logger:   params.Logger,
		credRepo: params.CredRepo,
		live:     params.Live,
		synth:    params.Synth,
		now:      time.Now,
		state:    entity.SessionState{Phase: entity.PhaseUnauthenticated},
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resume performs the start transition of the session state machine.
func (srv *sessionService) Resume(ctx context.Context, fragment string) (*entity.SessionState, error) {
	// 1. OAuth callback: a credential in the redirect fragment wins.
	if fragment != "" {
		lifetime := 2 * time.Hour
		if srv.cfg.Salesforce != nil {
			lifetime = srv.cfg.Salesforce.TokenLifetime
		}

		cred, err := infraauth.ParseCallbackFragment(fragment, srv.now(), lifetime)
		if err != nil {
			// Recovered locally: a malformed callback means "no credential",
			// the remaining transitions still apply.
			srv.log(ctx).Warn("discarding malformed callback fragment")
		} else {
			if err := srv.credRepo.Save(ctx, cred); err != nil {
				return nil, errors.Wrap(err, "failed to persist callback credential")
			}

			srv.armLive(cred)
			srv.log(ctx).Info("session established from callback",
				slog.String("instance_url", cred.InstanceURL),
				slog.Time("expires_at", cred.ExpiresAt),
			)

			return srv.Current(), nil
		}
	}

	// 2. Stored credential, unless demo mode is forced.
	if !srv.cfg.SyntheticForced() {
		cred, err := srv.credRepo.Load(ctx)
		switch {
		case err == nil:
			srv.armLive(cred)
			srv.log(ctx).Info("session resumed from stored credential",
				slog.String("instance_url", cred.InstanceURL),
			)

			return srv.Current(), nil
		case errors.Is(err, repository.ErrCredentialNotFound):
			// Fall through to the remaining transitions.
		default:
			return nil, errors.Wrap(err, "failed to load stored credential")
		}
	}

	// 3. Forced demo mode authenticates unconditionally.
	if srv.cfg.SyntheticForced() {
		srv.armSynthetic()
		srv.log(ctx).Info("session entered synthetic mode")

		return srv.Current(), nil
	}

	// 4. Nothing to resume: the presentation layer must block on login.
	srv.disarm()

	return srv.Current(), nil
}

func (srv *sessionService) armLive(cred *entity.Credential) {
	srv.live.SetAuth(cred.InstanceURL, cred.AccessToken)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.active = srv.live
	srv.state = entity.SessionState{
		Phase:       entity.PhaseAuthenticated,
		Mode:        entity.ModeLive,
		InstanceURL: cred.InstanceURL,
		ExpiresAt:   cred.ExpiresAt,
	}
}

func (srv *sessionService) armSynthetic() {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.active = srv.synth
	srv.state = entity.SessionState{
		Phase: entity.PhaseAuthenticated,
		Mode:  entity.ModeSynthetic,
	}
}

func (srv *sessionService) disarm() {
	srv.live.SetAuth("", "")

	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.active = nil
	srv.state = entity.SessionState{Phase: entity.PhaseUnauthenticated}
}

// Current returns the session state as last transitioned.
func (srv *sessionService) Current() *entity.SessionState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	state := srv.state

	return &state
}

// LoginURL returns the provider authorization URL for the connected app.
func (srv *sessionService) LoginURL() (string, error) {
	if srv.cfg.SyntheticForced() {
		return "", domainerrors.ErrInternalError.WithDetails("no connected app configured, demo mode only")
	}

	return infraauth.AuthorizeURL(srv.cfg.Salesforce), nil
}

// Logout clears the credential and returns the state machine to
// unauthenticated, regardless of the mode it was in.
func (srv *sessionService) Logout(ctx context.Context) error {
	srv.disarm()

	if err := srv.credRepo.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear stored credential")
	}

	srv.log(ctx).Info("session closed")

	return nil
}

func (srv *sessionService) activeClient() (service.CRMClient, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.active == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}

	return srv.active, nil
}

// Refresh loads the four aggregate views concurrently; the cycle fails as a
// whole when any read fails, and a failed cycle closes the session.
func (srv *sessionService) Refresh(ctx context.Context) (*entity.DashboardSnapshot, error) {
	// The cycle runs detached from the caller. A read failure forces a
	// logout, so a client disconnect mid-load must not be able to abort
	// the reads and take the session down with it; coalesced joiners
	// must not be failed by the first caller's cancellation either.
	// Context values (request-scoped logger) still flow through.
	cycleCtx := context.WithoutCancel(ctx)
	result, err, _ := srv.refreshGroup.Do("refresh", func() (any, error) {
		return srv.refreshCycle(cycleCtx)
	})
	if err != nil {
		return nil, err
	}

	return result.(*entity.DashboardSnapshot), nil
}

func (srv *sessionService) refreshCycle(ctx context.Context) (*entity.DashboardSnapshot, error) {
	client, err := srv.activeClient()
	if err != nil {
		return nil, err
	}

	snapshot := &entity.DashboardSnapshot{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		snapshot.Accounts, err = client.ListAccounts(groupCtx, dashboardListLimit)

		return err
	})
	group.Go(func() error {
		var err error
		snapshot.Opportunities, err = client.ListOpportunities(groupCtx, dashboardListLimit)

		return err
	})
	group.Go(func() error {
		var err error
		snapshot.StageDistribution, err = client.StageDistribution(groupCtx)

		return err
	})
	group.Go(func() error {
		var err error
		snapshot.IndustryDistribution, err = client.IndustryDistribution(groupCtx)

		return err
	})

	if err := group.Wait(); err != nil {
		// A client that fails reads is assumed to hold a revoked or
		// expired token: treat the cycle as a lost session.
		srv.log(ctx).Error("refresh cycle failed, closing session", slog.Any("error", err))
		if logoutErr := srv.Logout(ctx); logoutErr != nil {
			srv.log(ctx).Error("failed to close session after refresh failure", slog.Any("error", logoutErr))
		}

		return nil, errors.Wrap(err, "refresh cycle failed")
	}

	snapshot.LoadedAt = srv.now()

	return snapshot, nil
}

// MonthlyVolume loads the per-month opportunity grouping from the active client.
func (srv *sessionService) MonthlyVolume(ctx context.Context) (*entity.QueryResult, error) {
	client, err := srv.activeClient()
	if err != nil {
		return nil, err
	}

	result, err := client.MonthlyOpportunityVolume(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load monthly opportunity volume")
	}

	return result, nil
}

// GetRecord fetches one record from the active client.
func (srv *sessionService) GetRecord(ctx context.Context, objectType entity.ObjectType, id string, fields []string) (entity.Record, error) {
	if !objectType.Known() {
		return nil, domainerrors.ErrUnknownObjectType.WithDetails(string(objectType))
	}

	client, err := srv.activeClient()
	if err != nil {
		return nil, err
	}

	record, err := client.GetRecord(ctx, objectType, id, fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch record")
	}

	return record, nil
}

// Mutate dispatches one write to the active client, then reloads the
// aggregate views so derived data stays consistent with the backend.
func (srv *sessionService) Mutate(ctx context.Context, input *usecase.MutateInput) (*usecase.MutateOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("missing mutation input")
	}
	if !input.ObjectType.Known() {
		return nil, domainerrors.ErrUnknownObjectType.WithDetails(string(input.ObjectType))
	}

	client, err := srv.activeClient()
	if err != nil {
		return nil, err
	}

	result, err := srv.dispatchWrite(ctx, client, input)
	if err != nil {
		// A single failed write is not an authentication fault: surface it
		// with session state untouched.
		return nil, err
	}

	srv.log(ctx).Info("record mutation applied",
		slog.String("kind", string(input.Kind)),
		slog.String("object_type", string(input.ObjectType)),
		slog.String("id", result.ID),
	)

	output := &usecase.MutateOutput{Result: result}

	// The reload failing is a read fault and follows read semantics: the
	// session closes, while the already-applied write still reports success.
	snapshot, err := srv.Refresh(ctx)
	if err != nil {
		srv.log(ctx).Warn("post-mutation refresh failed", slog.Any("error", err))

		return output, nil
	}
	output.Snapshot = snapshot

	return output, nil
}

func (srv *sessionService) dispatchWrite(ctx context.Context, client service.CRMClient, input *usecase.MutateInput) (*entity.SaveResult, error) {
	switch input.Kind {
	case usecase.MutationCreate:
		if len(input.Data) == 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("create requires field data")
		}

		return client.CreateRecord(ctx, input.ObjectType, input.Data)

	case usecase.MutationUpdate:
		if input.ID == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("update requires a record id")
		}
		if len(input.Data) == 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("update requires field data")
		}
		if err := client.UpdateRecord(ctx, input.ObjectType, input.ID, input.Data); err != nil {
			return nil, err
		}

		return &entity.SaveResult{ID: input.ID, Success: true}, nil

	case usecase.MutationDelete:
		if input.ID == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("delete requires a record id")
		}
		if err := client.DeleteRecord(ctx, input.ObjectType, input.ID); err != nil {
			return nil, err
		}

		return &entity.SaveResult{ID: input.ID, Success: true}, nil

	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown mutation kind " + string(input.Kind))
	}
}
