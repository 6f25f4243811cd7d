package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"orderdesk/internal/domain"
	"orderdesk/internal/upstream"
)

// MenuOptions holds flags for the menu list command.
type MenuOptions struct {
	*RootOptions
	Page     int
	Limit    int
	Category string
	Search   string
}

// NewMenuCommand creates the menu command group.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MenuOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List and manage menu items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuList(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "page size")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&opts.Search, "search", "", "search text")

	cmd.AddCommand(newMenuAddCommand(rootOpts))
	cmd.AddCommand(newMenuToggleCommand(rootOpts))
	cmd.AddCommand(newMenuDeleteCommand(rootOpts))

	return cmd
}

func runMenuList(cmd *cobra.Command, opts *MenuOptions) error {
	e, err := newEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	filter := domain.MenuFilter{Category: opts.Category, Search: opts.Search}
	page, err := e.API.FetchMenuItems(cmd.Context(), opts.Page, opts.Limit, filter)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return printJSON(cmd, page)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Veg %d | Non-veg %d | Unavailable %d | Total %d\n\n",
		page.Counts.Vegetarian, page.Counts.NonVegetarian, page.Counts.Unavailable, page.Total)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tVEG\tAVAILABLE")
	for _, item := range page.Menus {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%t\t%t\n",
			item.ID, item.Name, item.Category, item.Price, item.IsVeg, item.IsAvailable)
	}
	return w.Flush()
}

// MenuAddOptions holds flags for the menu add command.
type MenuAddOptions struct {
	*RootOptions
	Description string
	Price       float64
	Category    string
	IsVeg       bool
	ImagePath   string
}

func newMenuAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MenuAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a menu item, optionally uploading an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(opts.RootOptions)
			if err != nil {
				return err
			}
			err = e.API.AddMenuItem(cmd.Context(), upstream.MenuItemInput{
				Name:        args[0],
				Description: opts.Description,
				Price:       opts.Price,
				Category:    opts.Category,
				IsVeg:       opts.IsVeg,
				IsAvailable: true,
				ImagePath:   opts.ImagePath,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created menu item %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "description", "", "item description")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "item price")
	cmd.Flags().StringVar(&opts.Category, "category", "", "category name")
	cmd.Flags().BoolVar(&opts.IsVeg, "veg", false, "vegetarian item")
	cmd.Flags().StringVar(&opts.ImagePath, "image", "", "image file to upload")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newMenuToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <menu-id>",
		Short: "Flip a menu item's availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			item, err := e.API.ToggleMenuItemAvailability(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "unavailable"
			if item.IsAvailable {
				state = "available"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", item.Name, state)
			return nil
		},
	}
}

func newMenuDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <menu-id>",
		Short: "Delete a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(rootOpts)
			if err != nil {
				return err
			}
			if err := e.API.DeleteMenuItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Menu item deleted.")
			return nil
		},
	}
}
