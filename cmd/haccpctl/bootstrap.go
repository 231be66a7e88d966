package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"haccp/internal/domain"
	"haccp/internal/repository/postgres"
	"haccp/internal/service"
)

var bootstrapOpts struct {
	tenantName string
	slug       string
	timezone   string
	marketName string
	marketCode string
	firstName  string
	lastName   string
	initials   string
	pin        string
	email      string
	homeMarket bool
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create a tenant with its first market and superadmin",
	Long: `Create a new tenant together with a first market and a staff member
holding the SUPERADMIN role. The superadmin can then log in with the given
initials and PIN and set up everything else through the API.`,
	RunE: runBootstrap,
}

func init() {
	f := bootstrapCmd.Flags()
	f.StringVar(&bootstrapOpts.tenantName, "tenant-name", "", "Tenant display name")
	f.StringVar(&bootstrapOpts.slug, "slug", "", "Tenant slug used at login")
	f.StringVar(&bootstrapOpts.timezone, "timezone", "", "IANA timezone (default HACCP_APP_TIMEZONE)")
	f.StringVar(&bootstrapOpts.marketName, "market-name", "", "Name of the first market")
	f.StringVar(&bootstrapOpts.marketCode, "market-code", "", "Short code of the first market")
	f.StringVar(&bootstrapOpts.firstName, "first-name", "", "Superadmin first name")
	f.StringVar(&bootstrapOpts.lastName, "last-name", "", "Superadmin last name")
	f.StringVar(&bootstrapOpts.initials, "initials", "", "Superadmin initials (2-4 letters)")
	f.StringVar(&bootstrapOpts.pin, "pin", "", "Superadmin PIN (4-6 digits)")
	f.StringVar(&bootstrapOpts.email, "email", "", "Superadmin email for reminder digests")
	f.BoolVar(&bootstrapOpts.homeMarket, "home-market", false, "Scope the superadmin profile to the first market instead of the whole tenant")
	for _, name := range []string{"tenant-name", "slug", "market-name", "market-code", "first-name", "initials", "pin"} {
		_ = bootstrapCmd.MarkFlagRequired(name)
	}
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	tenantRepo := postgres.NewTenantRepo(db)
	marketRepo := postgres.NewMarketRepo(db)
	staffRepo := postgres.NewStaffRepo(db)
	rbac := service.NewRbacService(postgres.NewRbacRepo(db), staffRepo, marketRepo)
	tenants := service.NewTenantService(tenantRepo, cfg.App.Timezone)
	markets := service.NewMarketService(marketRepo, staffRepo, rbac)
	staffSvc := service.NewStaffService(staffRepo, marketRepo, rbac)

	tenant, err := tenants.Create(ctx, service.CreateTenantInput{
		Name:     bootstrapOpts.tenantName,
		Slug:     bootstrapOpts.slug,
		Timezone: bootstrapOpts.timezone,
	})
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	market, err := markets.Create(ctx, tenant.ID, service.CreateMarketInput{
		Name: bootstrapOpts.marketName,
		Code: bootstrapOpts.marketCode,
	})
	if err != nil {
		return fmt.Errorf("create market: %w", err)
	}

	system := domain.Actor{TenantID: tenant.ID, MarketID: market.ID, Role: domain.RoleSuperAdmin}

	var home *uuid.UUID
	if bootstrapOpts.homeMarket {
		home = &market.ID
	}
	var email *string
	if bootstrapOpts.email != "" {
		email = &bootstrapOpts.email
	}
	staff, err := staffSvc.Create(ctx, system, service.CreateStaffInput{
		FirstName: bootstrapOpts.firstName,
		LastName:  bootstrapOpts.lastName,
		Initials:  bootstrapOpts.initials,
		PIN:       bootstrapOpts.pin,
		MarketID:  home,
		Email:     email,
	})
	if err != nil {
		return fmt.Errorf("create superadmin: %w", err)
	}

	// The first grant is recorded as self-granted.
	system.StaffID = staff.ID
	if _, err := rbac.Grant(ctx, system, service.GrantRoleInput{
		StaffID: staff.ID,
		Role:    domain.RoleSuperAdmin,
	}); err != nil {
		return fmt.Errorf("grant superadmin: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "tenant  %s (%s) %s\n", tenant.Slug, tenant.ID, tenant.Timezone)
	fmt.Fprintf(out, "market  %s (%s)\n", market.Code, market.ID)
	fmt.Fprintf(out, "staff   %s (%s) SUPERADMIN\n", staff.Initials, staff.ID)
	return nil
}
