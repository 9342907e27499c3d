package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"campusview/internal/browse"
	"campusview/internal/domain/clubs"
	"campusview/internal/domain/reviews"
	"campusview/internal/filter"
	"campusview/internal/notifications"
	"campusview/internal/params"

	"github.com/spf13/cobra"
)

var errNoUploader = errors.New("logo upload needs CLOUDINARY_URL to be set")

type clubQuery struct {
	Search   string   `validate:"max=100"`
	Colleges []string `validate:"dive,collegefilter"`
}

func (app *application) clubsPage() *browse.Page[clubs.Club] {
	return browse.New(browse.Config[clubs.Club]{
		Name:  "clubs",
		Fetch: app.store.Clubs.List,
		Fields: func(c clubs.Club) []string {
			return []string{c.Name}
		},
		Category: func(c clubs.Club) string { return c.College },
		Key:      func(c clubs.Club) string { return strings.ToLower(c.Name) },
		Catalog:  filter.Colleges,
		Logger:   app.logger,
	})
}

func (app *application) clubsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubs",
		Short: "Student clubs",
	}
	cmd.AddCommand(app.clubsListCommand(), app.clubsShowCommand(), app.clubsAddCommand())
	return cmd
}

func (app *application) clubsListCommand() *cobra.Command {
	var q clubQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clubs, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := Validate.Struct(q); err != nil {
				return validationMessage(err)
			}

			page := app.clubsPage()
			if err := page.Refresh(cmd.Context()); err != nil {
				return err
			}
			visible, err := page.Query(q.Search, q.Colleges)
			if err != nil {
				return err
			}

			items, meta := params.Paginate(visible, params.New(app.flags.page, app.flags.limit))
			if app.flags.json {
				return writeJSON(app.out, listing[clubs.Club]{Items: items, Pagination: meta})
			}

			tw := newTable(app.out)
			fmt.Fprintln(tw, "NAME\tCOLLEGE\tLOCATION\tRATING")
			for _, c := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.College, c.Location, score(c.Reviews))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(app.out, "No clubs match.")
			}
			printPageFooter(app.out, meta)
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match club name")
	cmd.Flags().StringSliceVar(&q.Colleges, "college", nil,
		fmt.Sprintf("only show clubs of these colleges (%s)", strings.Join(filter.Colleges, ", ")))
	return cmd
}

func (app *application) clubsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a club and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.findClub(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			card := app.reviewCard(reviews.KindClub, c.Name, c.Reviews)

			if app.flags.json {
				return writeJSON(app.out, struct {
					Club    clubs.Club   `json:"club"`
					Reviews []reviewView `json:"reviews"`
				}{c, app.reviewViews(card.Rows())})
			}

			app.printClub(c)
			if c.Reviews == nil || !c.Reviews.Hidden || len(c.Reviews.Reviews) > 0 {
				app.printReviews(app.out, card)
			}
			return nil
		},
	}
}

func (app *application) findClub(ctx context.Context, name string) (clubs.Club, error) {
	page := app.clubsPage()
	if err := page.Refresh(ctx); err != nil {
		return clubs.Club{}, err
	}
	c, ok := page.Find(strings.ToLower(name))
	if !ok {
		return clubs.Club{}, fmt.Errorf("no club named %q", name)
	}
	return c, nil
}

func (app *application) printClub(c clubs.Club) {
	w := app.out
	fmt.Fprintln(w, c.Name)
	fmt.Fprintf(w, "  %s\n", c.College)
	if c.Location != "" {
		fmt.Fprintf(w, "  Meets at %s\n", c.Location)
	}
	for _, d := range c.Schedule.Days {
		hours := make([]string, 0, len(d.Hours))
		for _, h := range d.Hours {
			hours = append(hours, h.Open+"-"+h.Close)
		}
		fmt.Fprintf(w, "  %s %s\n", d.Day, strings.Join(hours, ", "))
	}
	if c.Link != "" {
		fmt.Fprintf(w, "  %s\n", c.Link)
	}
	if c.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", c.Description)
	}
}

type addClubFlags struct {
	college     string
	location    string
	description string
	link        string
	image       string
	logoFile    string
}

func (app *application) clubsAddCommand() *cobra.Command {
	var f addClubFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a club",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.addClub(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.college, "college", "College of Engineering",
		fmt.Sprintf("college the club belongs to (%s)", strings.Join(filter.ClubColleges, ", ")))
	cmd.Flags().StringVar(&f.location, "location", "", "where the club meets")
	cmd.Flags().StringVar(&f.description, "description", "", "what the club is about")
	cmd.Flags().StringVar(&f.link, "link", clubs.DefaultLink, "club website")
	cmd.Flags().StringVar(&f.image, "image", "", "logo URL")
	cmd.Flags().StringVar(&f.logoFile, "logo-file", "", "upload this image as the club logo")
	return cmd
}

func (app *application) addClub(ctx context.Context, name string, f addClubFlags) error {
	club := clubs.New(strings.TrimSpace(name), f.college)
	club.Location = f.location
	club.Description = f.description
	club.Link = f.link
	club.Image = f.image

	if err := Validate.Struct(club); err != nil {
		return validationMessage(err)
	}

	if f.logoFile != "" {
		if app.uploader == nil {
			return errNoUploader
		}
		file, err := os.Open(f.logoFile)
		if err != nil {
			return fmt.Errorf("open logo: %w", err)
		}
		defer file.Close()

		url, err := app.uploader.Upload(ctx, file, club.Name)
		if err != nil {
			return err
		}
		club.Image = url
	}

	if err := app.store.Clubs.Create(ctx, &club); err != nil {
		app.logger.Errorw("failed to add club", "name", club.Name, "error", err)
		if f.logoFile != "" {
			if delErr := app.uploader.Delete(ctx, club.Image); delErr != nil {
				app.logger.Errorw("cloudinary cleanup failed", "url", club.Image, "error", delErr)
			}
		}
		return err
	}

	if err := app.notifier.Notify(ctx, notifications.ClubCreated(club.Name)); err != nil {
		app.logger.Warnw("failed to announce club", "name", club.Name, "error", err)
	}
	if app.flags.json {
		return writeJSON(app.out, club)
	}
	return nil
}
