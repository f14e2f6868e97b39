package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whereto/internal/platform"
	"whereto/internal/ui"
)

var flagTop int

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List known streaming platforms",
	RunE:  platformsRun,
}

var platformsSetCmd = &cobra.Command{
	Use:   "set <platform-id> [platform-id...]",
	Short: "Set your preferred platforms, most preferred first",
	Args:  cobra.MinimumNArgs(1),
	RunE:  platformsSetRun,
}

var platformsRecommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "Suggest platforms based on your usage and preferences",
	RunE:  platformsRecommendedRun,
}

func init() {
	platformsRecommendedCmd.Flags().IntVarP(&flagTop, "top", "n", 5, "Number of platforms to suggest")

	platformsCmd.AddCommand(platformsSetCmd)
	platformsCmd.AddCommand(platformsRecommendedCmd)
}

func platformsRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	profile, err := st.Profile(context.Background())
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	fmt.Print(ui.RenderPlatforms(platform.All(), profile.PreferredPlatforms))
	return nil
}

func platformsSetRun(cmd *cobra.Command, args []string) error {
	ids := make([]string, 0, len(args))
	for _, raw := range args {
		key := platform.Normalize(raw)
		if _, ok := platform.Lookup(key); !ok {
			return fmt.Errorf("unknown platform %q (see `whereto platforms`)", raw)
		}
		ids = append(ids, key)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := st.SetPreferredPlatforms(context.Background(), ids); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	fmt.Printf("Preferred platforms: %s\n", strings.Join(ids, ", "))
	return nil
}

func platformsRecommendedRun(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	recommended := svc.RecommendedPlatforms(context.Background(), flagTop)
	for i, desc := range recommended {
		fmt.Printf("%d. %s\n", i+1, desc.DisplayName)
	}
	return nil
}
