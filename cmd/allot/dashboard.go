package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/allot/internal/tui"
	"github.com/Veraticus/allot/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive budget dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			return tui.Run(ctx, e,
				tui.WithTheme(themes.ByName(viper.GetString("dashboard.theme"))),
				tui.WithTransactionLimit(viper.GetInt("dashboard.transactions")),
			)
		},
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("dashboard.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
