package main

import (
	"context"
	"fmt"
	"strings"

	"campusview/internal/browse"
	"campusview/internal/domain/dining"
	"campusview/internal/domain/reviews"
	"campusview/internal/filter"
	"campusview/internal/params"

	"github.com/spf13/cobra"
)

type diningQuery struct {
	Search string   `validate:"max=100"`
	Halls  []string `validate:"dive,dininghall"`
}

func (app *application) restaurantsPage() *browse.Page[dining.Restaurant] {
	return browse.New(browse.Config[dining.Restaurant]{
		Name:  "restaurants",
		Fetch: app.store.Restaurants.List,
		Fields: func(r dining.Restaurant) []string {
			return []string{r.Name, r.Location}
		},
		Category: func(r dining.Restaurant) string { return r.DiningHall },
		Key:      func(r dining.Restaurant) string { return strings.ToLower(r.Name) },
		Catalog:  filter.DiningHalls,
		Logger:   app.logger,
	})
}

func (app *application) diningCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dining",
		Short: "Dining halls and restaurants",
	}
	cmd.AddCommand(app.diningListCommand(), app.diningShowCommand())
	return cmd
}

func (app *application) diningListCommand() *cobra.Command {
	var q diningQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List restaurants, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Validate.Struct(q); err != nil {
				return validationMessage(err)
			}

			page := app.restaurantsPage()
			if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}
			visible, err := page.Query(q.Search, q.Halls)
			if err != nil {
				return err
			}

			items, meta := params.Paginate(visible, params.New(app.flags.page, app.flags.limit))
			if app.flags.json {
				return writeJSON(app.out, listing[dining.Restaurant]{Items: items, Pagination: meta})
			}

			tw := newTable(app.out)
			fmt.Fprintln(tw, "NAME\tLOCATION\tDINING HALL\tRATING")
			for _, r := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Location, r.DiningHall, score(r.Reviews))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(app.out, "No restaurants match.")
			}
			printPageFooter(app.out, meta)
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match name or location")
	cmd.Flags().StringSliceVar(&q.Halls, "hall", nil,
		fmt.Sprintf("only show these dining halls (%s)", strings.Join(filter.DiningHalls, ", ")))
	return cmd
}

func (app *application) diningShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a restaurant with today's menu and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.findRestaurant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			card := app.reviewCard(reviews.KindRestaurant, r.Name, r.Reviews)

			if app.flags.json {
				return writeJSON(app.out, struct {
					Restaurant dining.Restaurant     `json:"restaurant"`
					Today      []dining.MenuCategory `json:"today"`
					Reviews    []reviewView          `json:"reviews"`
				}{r, r.MenuFor(app.now()), app.reviewViews(card.Rows())})
			}

			app.printRestaurant(r)
			app.printReviews(app.out, card)
			return nil
		},
	}
}

func (app *application) findRestaurant(ctx context.Context, name string) (dining.Restaurant, error) {
	page := app.restaurantsPage()
	if err := page.Refresh(ctx); err != nil {
		return dining.Restaurant{}, err
	}
	r, ok := page.Find(strings.ToLower(name))
	if !ok {
		return dining.Restaurant{}, fmt.Errorf("no restaurant named %q", name)
	}
	return r, nil
}

func (app *application) printRestaurant(r dining.Restaurant) {
	w := app.out
	today := app.now()

	fmt.Fprintln(w, r.Name)
	fmt.Fprintf(w, "  %s, %s (%s)\n", r.Building, r.Location, r.DiningHall)
	if r.Cuisine != nil && *r.Cuisine != "" {
		fmt.Fprintf(w, "  Cuisine: %s\n", *r.Cuisine)
	}
	if hours := r.Schedule[today.Weekday().String()]; len(hours) > 0 {
		fmt.Fprintf(w, "  Today: %s\n", strings.Join(hours, ", "))
	}
	if r.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", r.Description)
	}

	fmt.Fprintf(w, "\nMenu for %s\n", dining.MenuKey(today))
	menu := r.MenuFor(today)
	if len(menu) == 0 {
		fmt.Fprintln(w, "  No menu published for today.")
		return
	}
	for _, cat := range menu {
		fmt.Fprintf(w, "  %s\n", cat.Heading())
		for _, item := range cat.Items {
			fmt.Fprintf(w, "    - %s\n", item)
		}
	}
}
