package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whereto/internal/ui"
)

var flagPick bool

var watchCmd = &cobra.Command{
	Use:   "watch [title]",
	Short: "Open the best offer for a title in your browser",
	Args:  cobra.ArbitraryArgs,
	RunE:  watchRun,
}

func init() {
	watchCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick the offer interactively instead of opening the top one")
}

func watchRun(cmd *cobra.Command, args []string) error {
	identity, err := identityFromArgs(args)
	if err != nil {
		return err
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	if !flagPick {
		if !svc.LaunchBestOffer(ctx, identity) {
			return fmt.Errorf("could not open an offer for %q", identity.Title)
		}
		fmt.Fprintln(os.Stderr, "Opened the top offer in your browser.")
		return nil
	}

	result := svc.Resolve(ctx, identity)

	items := make([]string, len(result.Offers))
	for i, offer := range result.Offers {
		items[i] = ui.OfferLine(offer)
	}

	idx, err := ui.Select("Watch on", items)
	if err != nil {
		return err
	}

	chosen := result.Offers[idx]
	if !svc.Launch(ctx, chosen) {
		return fmt.Errorf("could not open %s", chosen.Platform.DisplayName)
	}
	fmt.Fprintf(os.Stderr, "Opened %s in your browser.\n", chosen.Platform.DisplayName)
	return nil
}
