package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"haccp/internal/domain"
	"haccp/internal/email/noop"
	"haccp/internal/email/ses"
	"haccp/internal/period"
	"haccp/internal/port"
	"haccp/internal/repository/postgres"
	"haccp/internal/service"
)

var hashPINCmd = &cobra.Command{
	Use:   "hash-pin PIN",
	Short: "Print the bcrypt hash of a PIN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := domain.ValidatePIN(args[0]); err != nil {
			return err
		}
		hash, err := service.HashPIN(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var periodOpts struct {
	periodicity string
	date        string
	ref         string
	count       int
}

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Print period references",
	Long: `Print the reference, label and bounds of the period containing --date
(default today) or denoted by --ref, followed by --count following periods.
The periodicity defaults to MONTHLY.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var pd period.Period
		switch {
		case periodOpts.ref != "" && periodOpts.periodicity == "":
			var err error
			if pd, err = period.Detect(periodOpts.ref); err != nil {
				return err
			}
		default:
			p := period.Monthly
			var err error
			if periodOpts.periodicity != "" {
				if p, err = period.ParsePeriodicity(periodOpts.periodicity); err != nil {
					return err
				}
			}
			if periodOpts.ref != "" {
				if pd, err = period.Parse(p, periodOpts.ref); err != nil {
					return err
				}
				break
			}
			d := period.Today(cfg.App.Location(), time.Now())
			if periodOpts.date != "" {
				if d, err = time.Parse("2006-01-02", periodOpts.date); err != nil {
					return fmt.Errorf("invalid date %q: %w", periodOpts.date, err)
				}
			}
			pd = period.Of(p, d)
		}

		out := cmd.OutOrStdout()
		for i := 0; i <= periodOpts.count; i++ {
			fmt.Fprintf(out, "%-11s %-22s %s .. %s\n",
				pd.Ref, pd.Label(), pd.Start.Format("2006-01-02"), pd.LastDay().Format("2006-01-02"))
			pd = pd.Next()
		}
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run one missed-check reminder sweep",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var sender port.EmailSender
		if cfg.Email.Provider == "ses" {
			if sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL); err != nil {
				return err
			}
		} else {
			sender = noop.NewNoopSender(cfg.Email.FrontendURL)
		}

		worker := service.NewReminderWorker(
			postgres.NewTenantRepo(db),
			postgres.NewMarketRepo(db),
			postgres.NewFormDefinitionRepo(db),
			postgres.NewFormInstanceRepo(db),
			postgres.NewStaffRepo(db),
			postgres.NewReminderRepo(db),
			sender,
			service.ReminderConfig{PollInterval: cfg.Reminders.PollInterval, Concurrency: cfg.Reminders.Concurrency},
			cfg.App.Location(),
		)
		return worker.RunOnce(cmd.Context())
	},
}

func init() {
	f := periodCmd.Flags()
	f.StringVarP(&periodOpts.periodicity, "periodicity", "p", "", "DAILY, WEEKLY, MONTHLY, QUARTERLY, HALF_YEARLY or YEARLY")
	f.StringVarP(&periodOpts.date, "date", "d", "", "Date inside the period (YYYY-MM-DD)")
	f.StringVarP(&periodOpts.ref, "ref", "r", "", "Period reference; periodicity is inferred when omitted")
	f.IntVarP(&periodOpts.count, "count", "n", 0, "Number of following periods to print")
}
