package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hayloft-mods/hayloft/internal/cli/helpers"
	"github.com/hayloft-mods/hayloft/internal/demohost"
	"github.com/hayloft-mods/hayloft/internal/errors"
	"github.com/hayloft-mods/hayloft/internal/logging"
	"github.com/hayloft-mods/hayloft/internal/mod"
	"github.com/hayloft-mods/hayloft/pkg/intercept"
)

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	var (
		configFlags helpers.ConfigFlags
		quantity    int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session against a simulated host game",
		Long: `Run a scripted shopping session against a simulated host game.

The demo loads the patch configuration, binds the host's ShopMenu callables,
attaches the mod to the host lifecycle, and dispatches shop transactions
through the interception registry. Purchases made while the game is running
have their quantity argument rewritten by the configured rules; calls made
before launch and after shutdown pass through untouched.

Example:
  hayloft demo
  hayloft demo --quantity 12
  hayloft demo --config ./config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), &configFlags, quantity)
		},
	}

	configFlags.AddFlags(cmd.Flags())
	cmd.Flags().IntVar(&quantity, "quantity", 64, "Quantity each scripted purchase asks for")

	return cmd
}

func runDemo(out io.Writer, configFlags *helpers.ConfigFlags, quantity int) error {
	settings, err := configFlags.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Narration goes to stdout; structured logs stay on stderr.
	logger := logging.New(logging.Config{
		Level:  settings.EffectiveLogLevel(),
		Pretty: settings.Logging.Pretty,
		Output: os.Stderr,
	})

	host := demohost.NewHost()
	shop := host.Shop()

	catalog := intercept.NewCatalog()
	if err := demohost.BindShop(catalog, shop); err != nil {
		return fmt.Errorf("failed to bind shop callables: %w", err)
	}

	registry, err := intercept.New(intercept.Config{Logger: logger, Resolver: catalog})
	if err != nil {
		return fmt.Errorf("failed to create interception registry: %w", err)
	}
	defer errors.DeferClose(logger, registry, "failed to close interception registry")

	m, err := mod.New(settings, registry, logger)
	if err != nil {
		return fmt.Errorf("failed to create mod: %w", err)
	}
	if err := m.Attach(host); err != nil {
		return fmt.Errorf("failed to attach mod: %w", err)
	}

	purchase := func(itemID string, qty, playerID int) error {
		results, err := registry.Invoke("ShopMenu", "TryPurchase", intercept.Values(itemID, qty, playerID))
		if err != nil {
			return fmt.Errorf("TryPurchase dispatch failed: %w", err)
		}
		fmt.Fprintf(out, "TryPurchase(%q, %d, player %d) -> %v\n", itemID, qty, playerID, results[0].Bool())
		return nil
	}
	refund := func(itemID string, qty int) error {
		results, err := registry.Invoke("ShopMenu", "Refund", intercept.Values(itemID, qty))
		if err != nil {
			return fmt.Errorf("Refund dispatch failed: %w", err)
		}
		fmt.Fprintf(out, "Refund(%q, %d) -> %v\n", itemID, qty, results[0].Bool())
		return nil
	}

	info := host.Info()
	fmt.Fprintf(out, "%s %s demo\n\n", info.Title, info.Version)
	fmt.Fprintf(out, "Ledger before: %s\n\n", shop.Ledger())

	// The shop is callable before launch, so the first purchase shows the
	// unpatched baseline.
	if err := purchase("hay", 5, 1); err != nil {
		return err
	}

	if err := host.Launch(); err != nil {
		return fmt.Errorf("launch event failed: %w", err)
	}
	fmt.Fprintf(out, "\n-- game launched, %d patch(es) active --\n", registry.Count())

	if err := host.OpenMenu("ShopMenu"); err != nil {
		return fmt.Errorf("menu event failed: %w", err)
	}

	if err := purchase("parsnip_seeds", quantity, 1); err != nil {
		return err
	}
	if err := purchase("iridium_sprinkler", quantity, 2); err != nil {
		return err
	}
	if err := refund("hay", 2); err != nil {
		return err
	}

	if err := host.Shutdown(); err != nil {
		return fmt.Errorf("shutdown event failed: %w", err)
	}
	fmt.Fprintf(out, "\n-- host shut down, patches removed --\n")

	if err := purchase("hay", quantity, 1); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nLedger after:  %s\n\n", shop.Ledger())

	fmt.Fprintln(out, "Journal (what the shop actually recorded):")
	for i, e := range shop.Journal() {
		fmt.Fprintf(out, "  %d. %s %s x%d ok=%v\n", i+1, e.Op, e.ItemID, e.Quantity, e.OK)
	}

	return nil
}
