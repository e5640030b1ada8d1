package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/deposit-calculator-go/internal/cache"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/internal/logging"
	"github.com/cloud-ru/deposit-calculator-go/internal/tools"
	"github.com/cloud-ru/deposit-calculator-go/internal/validators"
)

type calcOptions struct {
	principal  string
	product    string
	tenor      int
	age        int
	convention string
	seed       uint64
	schedule   bool
	compare    bool
}

func newCalcCommand() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate interest and maturity for one deposit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.schedule && opts.compare {
				return fmt.Errorf("--schedule and --compare are mutually exclusive")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("seed") {
				cfg.RandomSeed = opts.seed
			}
			return runCalc(cmd, cfg, opts, cmd.Flags().Changed("tenor"))
		},
	}

	cmd.Flags().StringVar(&opts.principal, "principal", "", "deposit amount (required)")
	_ = cmd.MarkFlagRequired("principal")
	cmd.Flags().StringVar(&opts.product, "product", "", "product id (required)")
	_ = cmd.MarkFlagRequired("product")
	cmd.Flags().IntVar(&opts.tenor, "tenor", 12, "tenor in months")
	cmd.Flags().IntVar(&opts.age, "age", 30, "depositor age in years")
	cmd.Flags().StringVar(&opts.convention, "convention", "simple", "interest convention: simple or compound")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the floating-rate draw (0 = random)")
	cmd.Flags().BoolVar(&opts.schedule, "schedule", false, "print the month-by-month growth schedule")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "compare simple and compound interest")

	return cmd
}

func runCalc(cmd *cobra.Command, cfg *config.Config, opts calcOptions, tenorSet bool) error {
	log := logging.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())

	deps, err := buildDeps(cfg, log, cache.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL))
	if err != nil {
		return err
	}

	// Без --tenor берем срок по умолчанию, если продукт его предлагает, иначе кратчайший
	if p, ok := deps.Catalog.Lookup(opts.product); ok && !tenorSet {
		opts.tenor = validators.ResetTenor(p, opts.tenor)
	}

	tool := tools.CalculateDepositReturn
	switch {
	case opts.schedule:
		tool = tools.DepositGrowthSchedule
	case opts.compare:
		tool = tools.CompareInterestConventions
	}

	params := map[string]interface{}{
		"principal":    opts.principal,
		"product_id":   opts.product,
		"tenor_months": opts.tenor,
		"age":          opts.age,
		"convention":   opts.convention,
	}

	result, err := tools.Registry(deps)[tool](cmd.Context(), params)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func newProductsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List deposit products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			deps, err := buildDeps(cfg, logging.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr()), nil)
			if err != nil {
				return err
			}
			result, err := tools.ListDepositProductsHandler(deps)(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
