package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
	"github.com/alexanderramin/logisales/internal/seed"
	"github.com/alexanderramin/logisales/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds what CLI commands and the TUI need.
type App struct {
	Settings service.SettingsService
	Currency string
	Logger   *slog.Logger

	// HistoryPath is where command bar history is kept. Empty keeps history
	// in memory only.
	HistoryPath string

	// Open builds Settings from a seed file (empty for the built-in dataset).
	// It is called once before any command runs when Settings is nil.
	Open func(seedPath string) (service.SettingsService, error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// RunTUI starts the interactive program. Nil uses runTUI.
	RunTUI func(app *App) error
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) startTUI() error {
	if a.RunTUI != nil {
		return a.RunTUI(a)
	}
	return runTUI(a)
}

// runTUI runs the full-screen program until the user quits.
func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// NewRootCmd creates the top-level "logisales" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var seedPath string

	root := &cobra.Command{
		Use:   "logisales",
		Short: "Sales target and commission settings console",
		Long: `Configure the team-wide sales targets and commission policy, and
give individual employees their own overrides.

Run without arguments in a terminal to open the interactive console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Settings != nil {
				return nil
			}
			if app.Open == nil {
				return fmt.Errorf("no settings source configured")
			}
			svc, err := app.Open(seedPath)
			if err != nil {
				return err
			}
			app.Settings = svc
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return app.startTUI()
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&seedPath, "seed", "", "Seed dataset JSON file (default: built-in demo data)")

	root.AddCommand(
		newTUICmd(app),
		newShowCmd(app),
		newEmployeesCmd(app),
		newSavedCmd(app),
		newSeedCmd(),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive settings console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.startTUI()
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [global|EMPLOYEE_ID]",
		Short: "Show the settings in effect for global or one employee",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sel := resolver.Global
			if len(args) == 1 {
				sel = resolver.ParseSelection(args[0])
			}
			if err := app.Settings.Select(ctx, sel); err != nil {
				return err
			}
			report, err := buildReport(ctx, app.Settings)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(report, currencyOf(app)))
			return nil
		},
	}
}

// buildReport collects what the settings panel shows for the current selection.
func buildReport(ctx context.Context, svc service.SettingsService) (formatter.SettingsReport, error) {
	report := formatter.SettingsReport{
		Settings:   svc.Active(),
		Inheriting: svc.IsInheriting(),
	}
	if e, ok := svc.SelectedEmployee(); ok {
		report.Employee = &e
	}
	saved, err := svc.LastSaved(ctx, svc.Selection())
	if err != nil {
		return report, fmt.Errorf("reading last save: %w", err)
	}
	report.LastSaved = saved
	return report, nil
}

func newSavedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List the settings kept by the save store",
		Long: `List every scope in the save store. The store is in memory unless
LOGISALES_DB names a file, so this is only useful with a file-backed store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := app.Settings.ListSaved(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing saved settings: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSavedList(saved, currencyOf(app)))
			return nil
		},
	}
}

func newEmployeesCmd(app *App) *cobra.Command {
	var (
		query      string
		commission commissionFlag
	)

	cmd := &cobra.Command{
		Use:   "employees",
		Short: "List employees and whether they override global settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees := app.Settings.Search(query)
			if commission.set {
				employees = withCommission(app.Settings.State(), employees, commission.value)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployees(employees, currencyOf(app)))
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "search", "", "Only list employees whose name or role contains this text")
	cmd.Flags().Var(&commission, "commission", "Only list employees paid on this structure (flat, percentage, tiered)")
	return cmd
}

// commissionFlag parses --commission through domain.ParseCommissionType so
// bad values fail during flag parsing.
type commissionFlag struct {
	value domain.CommissionType
	set   bool
}

var _ pflag.Value = (*commissionFlag)(nil)

func (f *commissionFlag) String() string { return strings.ToLower(string(f.value)) }
func (f *commissionFlag) Type() string   { return "structure" }

func (f *commissionFlag) Set(s string) error {
	t, err := domain.ParseCommissionType(s)
	if err != nil {
		return err
	}
	f.value, f.set = t, true
	return nil
}

// withCommission keeps the employees whose effective settings use t.
func withCommission(st resolver.State, employees []domain.Employee, t domain.CommissionType) []domain.Employee {
	var out []domain.Employee
	for _, e := range employees {
		if st.Active(resolver.Employee(e.ID)).CommissionType == t {
			out = append(out, e)
		}
	}
	return out
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with seed dataset files",
		// Seed commands never need the settings service.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Validate a seed file and report every problem found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := seed.LoadSeedSchema(args[0])
			if err != nil {
				return err
			}
			errs := seed.ValidateSeedSchema(schema)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSeedErrors(args[0], errs))
			if len(errs) > 0 {
				return fmt.Errorf("seed file %s has %d problem(s)", args[0], len(errs))
			}
			return nil
		},
	})
	return cmd
}

func currencyOf(app *App) string {
	if app.Currency == "" {
		return "৳"
	}
	return app.Currency
}

// selectionLabel names a selection for status messages.
func selectionLabel(svc service.SettingsService) string {
	if e, ok := svc.SelectedEmployee(); ok {
		return e.Name
	}
	return "global settings"
}

// tierAt resolves a 1-based tier row to its tier.
func tierAt(s domain.TargetSettings, row int) (domain.CommissionTier, error) {
	if row < 1 || row > len(s.Tiers) {
		return domain.CommissionTier{}, fmt.Errorf("no tier %d (have %d)", row, len(s.Tiers))
	}
	return s.Tiers[row-1], nil
}
