package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"haccp/internal/repository/postgres"
	"haccp/internal/service"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Inspect and (de)activate tenants",
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := service.NewTenantService(postgres.NewTenantRepo(db), cfg.App.Timezone)
		tenants, total, err := svc.List(cmd.Context(), 0, 100)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tNAME\tTIMEZONE\tACTIVE\tID")
		for _, t := range tenants {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", t.Slug, t.Name, t.Timezone, t.IsActive, t.ID)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if total > len(tenants) {
			fmt.Fprintf(cmd.OutOrStdout(), "... %d more\n", total-len(tenants))
		}
		return nil
	},
}

func setTenantActive(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := service.NewTenantService(postgres.NewTenantRepo(db), cfg.App.Timezone)
		tenant, err := svc.GetBySlug(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("tenant %q: %w", args[0], err)
		}
		if _, err := svc.Update(cmd.Context(), tenant.ID, service.UpdateTenantInput{IsActive: &active}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tenant %s active=%t\n", tenant.Slug, active)
		return nil
	}
}

func init() {
	tenantCmd.AddCommand(tenantListCmd)
	tenantCmd.AddCommand(&cobra.Command{
		Use:   "activate SLUG",
		Short: "Activate a tenant",
		Args:  cobra.ExactArgs(1),
		RunE:  setTenantActive(true),
	})
	tenantCmd.AddCommand(&cobra.Command{
		Use:   "deactivate SLUG",
		Short: "Deactivate a tenant; its staff can no longer log in",
		Args:  cobra.ExactArgs(1),
		RunE:  setTenantActive(false),
	})
}
