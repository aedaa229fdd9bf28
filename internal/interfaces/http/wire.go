package http

import (
	"fmt"

	"gorm.io/gorm"

	entitlementApp "github.com/ba6/gatekeeper/internal/application/entitlement"
	"github.com/ba6/gatekeeper/internal/application/gateaccess"
	spaceUsecases "github.com/ba6/gatekeeper/internal/application/space/usecases"
	"github.com/ba6/gatekeeper/internal/domain/entitlement"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/infrastructure/config"
	"github.com/ba6/gatekeeper/internal/infrastructure/metrics"
	"github.com/ba6/gatekeeper/internal/infrastructure/permission"
	"github.com/ba6/gatekeeper/internal/infrastructure/repository"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers"
	adminHandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/admin"
	gateHandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/gate"
	spaceHandlers "github.com/ba6/gatekeeper/internal/interfaces/http/handlers/space"
	"github.com/ba6/gatekeeper/internal/shared/db"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// repositories holds all repository instances used by the application
type repositories struct {
	gateRepo        gate.Repository
	customerRepo    entitlement.CustomerRepository
	entitlementRepo entitlement.ActiveEntitlementRepository
	memberRepo      space.MemberRepository
	threadRepo      space.ThreadRepository
	messageRepo     space.MessageRepository
}

func newRepositories(gdb *gorm.DB, cfg *config.Config, log logger.Interface) *repositories {
	return &repositories{
		gateRepo:        repository.NewGateRepository(gdb, log.Named("gates")),
		customerRepo:    repository.NewStripeCustomerRepository(gdb, cfg.Billing.Schema, cfg.Billing.CustomerMetadataKey, log.Named("stripe")),
		entitlementRepo: repository.NewStripeEntitlementRepository(gdb, cfg.Billing.Schema, log.Named("stripe")),
		memberRepo:      repository.NewSpaceMemberRepository(gdb, log.Named("spaces")),
		threadRepo:      repository.NewSpaceThreadRepository(gdb, log.Named("spaces")),
		messageRepo:     repository.NewSpaceMessageRepository(gdb, log.Named("spaces")),
	}
}

type services struct {
	entitlements *entitlementApp.ServiceImpl
	resolver     *gateaccess.Resolver
	inspector    *gateaccess.Inspector
	enforcer     *permission.Enforcer
	joinSpace    *spaceUsecases.JoinSpaceUseCase
	sendMessage  *spaceUsecases.SendMessageUseCase
	createThread *spaceUsecases.CreateThreadUseCase
}

func newServices(repos *repositories, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*services, error) {
	entitlements := entitlementApp.NewService(repos.customerRepo, repos.entitlementRepo, log.Named("entitlement"))
	resolver := gateaccess.NewResolver(repos.gateRepo, entitlements, metrics.NewGateRecorder(), log.Named("gateaccess"))
	txManager := db.NewTransactionManager(gdb)

	enforcer, err := permission.NewEnforcer(gdb, cfg.Permission.ModelPath, log.Named("casbin"))
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.SeedAdmins(cfg.Permission.AdminUserID); err != nil {
		return nil, fmt.Errorf("failed to seed admin roles: %w", err)
	}

	spaceLog := log.Named("spaces")
	return &services{
		entitlements: entitlements,
		resolver:     resolver,
		inspector:    gateaccess.NewInspector(repos.gateRepo, log.Named("inspector")),
		enforcer:     enforcer,
		joinSpace:    spaceUsecases.NewJoinSpaceUseCase(resolver, repos.memberRepo, spaceLog),
		sendMessage:  spaceUsecases.NewSendMessageUseCase(resolver, repos.memberRepo, repos.threadRepo, repos.messageRepo, spaceLog),
		createThread: spaceUsecases.NewCreateThreadUseCase(resolver, repos.memberRepo, repos.threadRepo, repos.messageRepo, txManager, spaceLog),
	}, nil
}

type allHandlers struct {
	gate           *gateHandlers.Handler
	space          *spaceHandlers.Handler
	gateValidation *adminHandlers.GateValidationHandler
	health         *handlers.HealthHandler
}

func newHandlers(svcs *services, checks map[string]handlers.PingFunc, log logger.Interface) *allHandlers {
	return &allHandlers{
		gate:           gateHandlers.NewHandler(svcs.resolver, svcs.entitlements, log.Named("gate_handler")),
		space:          spaceHandlers.NewHandler(svcs.joinSpace, svcs.sendMessage, svcs.createThread, log.Named("space_handler")),
		gateValidation: adminHandlers.NewGateValidationHandler(svcs.inspector, log.Named("admin_handler")),
		health:         handlers.NewHealthHandler(checks, log.Named("health")),
	}
}
