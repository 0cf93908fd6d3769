package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/storage"
)

func newListCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all heroes",
		Args:  cobra.NoArgs,
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			return printHeroes(cmd.OutOrStdout(), app.client.List(commandContext(cmd)))
		}),
	}
}

func newGetCmd(app *cliApp) *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one hero",
		Long: `Show one hero by id.

By default the hero is fetched from /apis/heroes/<id>, where a missing hero
is a failed request. With --lenient it is looked up with /apis/heroes?id=<id>
and a missing hero is simply reported as not found.`,
		Args: cobra.ExactArgs(1),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			var hero *domain.Hero
			if lenient {
				hero = app.client.GetNo404(ctx, id)
			} else {
				hero = app.client.Get(ctx, id)
			}
			if hero == nil {
				return fmt.Errorf("hero %d: %w", id, domain.ErrNotFound)
			}
			return printHeroes(cmd.OutOrStdout(), []domain.Hero{*hero})
		}),
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "treat a missing hero as an empty result instead of a failure")
	return cmd
}

func newSearchCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find heroes whose name contains term",
		Args:  cobra.ExactArgs(1),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			return printHeroes(cmd.OutOrStdout(), app.client.Search(commandContext(cmd), args[0]))
		}),
	}
}

func newAddCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a hero",
		Args:  cobra.ExactArgs(1),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			name := domain.NormalizeName(args[0])
			if !domain.ValidName(name) {
				return domain.ErrInvalidHero
			}
			hero := app.client.Add(commandContext(cmd), domain.Hero{Name: name})
			if hero == nil {
				return fmt.Errorf("add hero %q failed", name)
			}
			return printHeroes(cmd.OutOrStdout(), []domain.Hero{*hero})
		}),
	}
}

func newRenameCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Change a hero's name",
		Args:  cobra.ExactArgs(2),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := domain.NormalizeName(args[1])
			if !domain.ValidName(name) {
				return domain.ErrInvalidHero
			}
			if !app.client.Update(commandContext(cmd), domain.Hero{ID: id, Name: name}) {
				return fmt.Errorf("rename hero %d failed", id)
			}
			return nil
		}),
	}
}

func newDeleteCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hero",
		Args:  cobra.ExactArgs(1),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !app.client.Delete(commandContext(cmd), domain.HeroID(id)) {
				return fmt.Errorf("delete hero %d failed", id)
			}
			return nil
		}),
	}
}

func newExportCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all heroes to a JSON file usable as a seed",
		Args:  cobra.ExactArgs(1),
		RunE: app.withMessages(func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			list := app.client.List(ctx)
			if err := storage.WriteHeroes(ctx, app.files, args[0], list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d heroes to %s\n", len(list), args[0])
			return nil
		}),
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("hero id must be an integer, got %q", s)
	}
	return id, nil
}

func printHeroes(w io.Writer, list []domain.Hero) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, h := range list {
		fmt.Fprintf(tw, "%d\t%s\n", h.ID, h.Name)
	}
	return tw.Flush()
}
