package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orderdesk/internal/upstream"
)

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List and manage menu categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			cats, err := e.API.GetAllCategories(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd, cats)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, c := range cats.Categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d\n", cats.Page, cats.Pages)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")

	cmd.AddCommand(newCategoriesAddCommand(rootOpts))
	cmd.AddCommand(newCategoriesDeleteCommand(rootOpts))

	return cmd
}

func newCategoriesAddCommand(rootOpts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			created, err := e.API.CreateCategory(cmd.Context(), upstream.CategoryInput{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "category description")
	return cmd
}

func newCategoriesDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			if err := e.API.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category deleted.")
			return nil
		},
	}
}
