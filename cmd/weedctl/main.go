package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/cookie-is-yummy/weed/internal/cli"
	"github.com/cookie-is-yummy/weed/internal/config"
)

func main() {
	cfg, err := config.LoadCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "weedctl",
		Short:        "Operator CLI for the weed economy bot",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newHealthCmd(&apiBase),
		newTopCmd(&apiBase),
		newItemsCmd(&apiBase),
		newStreakCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newHealthCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := newClient(apiBase).Health(ctx); err != nil {
				return err
			}
			printSuccess("API is healthy.")
			return nil
		},
	}
}

func newTopCmd(apiBase *string) *cobra.Command {
	var viewer string
	cmd := &cobra.Command{
		Use:   "top <metric>",
		Short: "Show a global leaderboard (balance, networth, prestige, streak, lotto, wordle, completion, guilds, or an item id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ranking, err := newClient(apiBase).Leaderboard(ctx, args[0], viewer)
			if err != nil {
				return err
			}
			printRanking(args[0], ranking)
			return nil
		},
	}
	cmd.Flags().StringVar(&viewer, "viewer", "", "user id to locate in the ranking")
	return cmd
}

func newItemsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the item catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Items(ctx)
			if err != nil {
				return err
			}
			printItems(out)
			return nil
		},
	}
}

func newStreakCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak-sweep",
		Short: "Run the daily streak sweep now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			if err := newClient(apiBase).RunStreakSweep(ctx); err != nil {
				return err
			}
			printSuccess("Streak sweep completed.")
			return nil
		},
	}
}
