// Package gates holds operator commands for inspecting gate configuration and
// dry-running access decisions.
package gates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	entitlementApp "github.com/ba6/gatekeeper/internal/application/entitlement"
	"github.com/ba6/gatekeeper/internal/application/gateaccess"
	"github.com/ba6/gatekeeper/internal/application/gateaccess/dto"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/infrastructure/config"
	"github.com/ba6/gatekeeper/internal/infrastructure/database"
	"github.com/ba6/gatekeeper/internal/infrastructure/repository"
	"github.com/ba6/gatekeeper/internal/interfaces/cli/bootstrap"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

// ErrInvalidGates is returned by validate when at least one error-level issue
// was found, so the process exits non-zero.
var ErrInvalidGates = errors.New("gate configuration has errors")

var (
	env        string
	jsonOutput bool

	userID     string
	targetType string
	targetID   string
	action     string
)

type issueLister interface {
	InspectAll(ctx context.Context) ([]gate.Issue, error)
}

type evaluator interface {
	Evaluate(ctx context.Context, req gate.AccessRequest) (gate.Decision, error)
}

type entitlementLister interface {
	ListLookupKeys(ctx context.Context, userID string) ([]string, error)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gates",
		Short: "Inspect gate configuration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Report ambiguous or unsatisfiable gates",
		Long:  `Scan every enabled gate and report actions restricted by more than one gate and pay gates without a lookup key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Init(env)
			if err != nil {
				return err
			}
			defer database.Close()

			svcs := newServices(cfg, log)
			return runValidate(cmd.Context(), svcs.inspector, cmd.OutOrStdout(), jsonOutput)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Dry-run an access decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Init(env)
			if err != nil {
				return err
			}
			defer database.Close()

			svcs := newServices(cfg, log)
			req := gate.AccessRequest{
				UserID:     userID,
				TargetType: gate.TargetType(targetType),
				TargetID:   targetID,
				Action:     action,
			}
			return runCheck(cmd.Context(), svcs.resolver, svcs.entitlements, req, cmd.OutOrStdout(), jsonOutput)
		},
	}
	checkCmd.Flags().StringVar(&userID, "user", "", "Supabase user ID (required)")
	checkCmd.Flags().StringVar(&targetType, "target-type", "", "feed or space (required)")
	checkCmd.Flags().StringVar(&targetID, "target-id", "", "Feed or space ID (required)")
	checkCmd.Flags().StringVar(&action, "action", "", "Action name (required)")
	for _, name := range []string{"user", "target-type", "target-id", "action"} {
		_ = checkCmd.MarkFlagRequired(name)
	}

	cmd.AddCommand(validateCmd, checkCmd)
	return cmd
}

type services struct {
	resolver     *gateaccess.Resolver
	inspector    *gateaccess.Inspector
	entitlements *entitlementApp.ServiceImpl
}

func newServices(cfg *config.Config, log logger.Interface) *services {
	db := database.Get()
	gateRepo := repository.NewGateRepository(db, log.Named("gates"))
	entitlements := entitlementApp.NewService(
		repository.NewStripeCustomerRepository(db, cfg.Billing.Schema, cfg.Billing.CustomerMetadataKey, log.Named("stripe")),
		repository.NewStripeEntitlementRepository(db, cfg.Billing.Schema, log.Named("stripe")),
		log.Named("entitlement"),
	)
	return &services{
		resolver:     gateaccess.NewResolver(gateRepo, entitlements, nil, log.Named("gateaccess")),
		inspector:    gateaccess.NewInspector(gateRepo, log.Named("inspector")),
		entitlements: entitlements,
	}
}

func runValidate(ctx context.Context, inspector issueLister, out io.Writer, asJSON bool) error {
	issues, err := inspector.InspectAll(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		if err := json.NewEncoder(out).Encode(issues); err != nil {
			return err
		}
	} else if len(issues) == 0 {
		fmt.Fprintln(out, "no gate configuration issues found")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEVERITY\tCODE\tTARGET\tGATE\tACTION\tMESSAGE")
		for _, issue := range issues {
			fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%s\t%s\n",
				issue.Severity, issue.Code, issue.TargetType, issue.TargetID,
				issue.GateID, issue.Action, issue.Message)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if gate.HasErrors(issues) {
		return ErrInvalidGates
	}
	return nil
}

func runCheck(ctx context.Context, resolver evaluator, lister entitlementLister, req gate.AccessRequest, out io.Writer, asJSON bool) error {
	decision, err := resolver.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	keys, err := lister.ListLookupKeys(ctx, req.UserID)
	if err != nil {
		return err
	}

	result := dto.ToGateDecisionDTO(req.Action, decision)
	result.Entitlements = keys
	if asJSON {
		return json.NewEncoder(out).Encode(result)
	}

	if result.Allowed {
		fmt.Fprintf(out, "allowed: %s on %s/%s\n", result.Action, req.TargetType, req.TargetID)
	} else {
		fmt.Fprintf(out, "denied (%d %s) by gate %s: %s\n", result.Status, result.Reason, result.GateID, result.Message)
	}
	fmt.Fprintf(out, "entitlements: %s\n", strings.Join(keys, ", "))
	return nil
}
