package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campusview/internal/domain/reviews"
	"campusview/internal/reviewflow"

	"github.com/spf13/cobra"
)

var (
	errNoTarget     = errors.New("pass exactly one of --restaurant or --club")
	errNotYours     = errors.New("you can only change your own reviews")
	errNotConfirmed = errors.New("aborted")
	errBadRating    = fmt.Errorf("rating must be between 1 and %d", reviewflow.MaxStars)
)

func checkRating(rating int) error {
	if rating < 1 || rating > reviewflow.MaxStars {
		return fmt.Errorf("%w, got %d", errBadRating, rating)
	}
	return nil
}

func (app *application) reviewCard(kind reviews.Kind, owner string, section *reviews.ReviewSection) *reviewflow.Card {
	return reviewflow.NewCard(reviewflow.CardConfig{
		Kind:     kind,
		Owner:    owner,
		Store:    app.store.Reviews,
		Viewer:   app.session.Viewer,
		Notifier: app.notifier,
		Now:      app.now,
		Logger:   app.logger,
	}, section)
}

type reviewTarget struct {
	restaurant string
	club       string
}

func (t *reviewTarget) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.restaurant, "restaurant", "", "restaurant the review belongs to")
	cmd.Flags().StringVar(&t.club, "club", "", "club the review belongs to")
}

// loadCard loads the owning entity and builds its review card.
func (app *application) loadCard(ctx context.Context, t reviewTarget) (*reviewflow.Card, error) {
	switch {
	case t.restaurant != "" && t.club == "":
		r, err := app.findRestaurant(ctx, t.restaurant)
		if err != nil {
			return nil, err
		}
		return app.reviewCard(reviews.KindRestaurant, r.Name, r.Reviews), nil
	case t.club != "" && t.restaurant == "":
		c, err := app.findClub(ctx, t.club)
		if err != nil {
			return nil, err
		}
		return app.reviewCard(reviews.KindClub, c.Name, c.Reviews), nil
	}
	return nil, errNoTarget
}

func (app *application) reviewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reviews",
		Aliases: []string{"review"},
		Short:   "Write, edit and delete your reviews",
	}
	cmd.AddCommand(app.reviewAddCommand(), app.reviewEditCommand(), app.reviewDeleteCommand())
	return cmd
}

func (app *application) reviewAddCommand() *cobra.Command {
	var (
		target  reviewTarget
		rating  int
		message string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRating(rating); err != nil {
				return err
			}
			card, err := app.loadCard(cmd.Context(), target)
			if err != nil {
				return err
			}
			if err := card.Compose(); err != nil {
				return err
			}

			editor := card.Editor()
			editor.SetText(message)
			editor.SelectStar(rating - 1)
			if err := editor.Submit(cmd.Context()); err != nil {
				return err
			}
			return app.printCard(card)
		},
	}

	target.bind(cmd)
	cmd.Flags().IntVarP(&rating, "rating", "r", 5, "stars, 1 to 5")
	cmd.Flags().StringVarP(&message, "message", "m", "", "review text")
	return cmd
}

func (app *application) reviewEditCommand() *cobra.Command {
	var (
		target  reviewTarget
		rating  int
		message string
	)

	cmd := &cobra.Command{
		Use:   "edit HANDLE",
		Short: "Rewrite one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rating") {
				if err := checkRating(rating); err != nil {
					return err
				}
			}
			card, existing, err := app.ownReview(cmd.Context(), target, args[0])
			if err != nil {
				return err
			}

			card.EditReview(existing)
			editor := card.Editor()
			if cmd.Flags().Changed("message") {
				editor.SetText(message)
			}
			if cmd.Flags().Changed("rating") {
				editor.SelectStar(rating - 1)
			}
			if err := editor.Submit(cmd.Context()); err != nil {
				return err
			}
			return app.printCard(card)
		},
	}

	target.bind(cmd)
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "new star rating, 1 to 5")
	cmd.Flags().StringVarP(&message, "message", "m", "", "new review text")
	return cmd
}

func (app *application) reviewDeleteCommand() *cobra.Command {
	var (
		target reviewTarget
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "delete HANDLE",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, existing, err := app.ownReview(cmd.Context(), target, args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := app.confirm(fmt.Sprintf("Delete your review of %s (%s)?",
					existing.Owner, reviewflow.Stars(int(existing.Rating))))
				if err != nil {
					return err
				}
				if !ok {
					return errNotConfirmed
				}
			}

			if err := card.DeleteReview(cmd.Context(), existing.IDString()); err != nil {
				return err
			}
			return app.printCard(card)
		},
	}

	target.bind(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// ownReview resolves a handle on the target's card and checks the viewer
// wrote it.
func (app *application) ownReview(ctx context.Context, t reviewTarget, handle string) (*reviewflow.Card, reviews.Review, error) {
	id, err := app.handles.Parse(handle)
	if err != nil {
		return nil, reviews.Review{}, err
	}
	if !app.session.LoggedIn() {
		return nil, reviews.Review{}, reviewflow.ErrNotLoggedIn
	}

	card, err := app.loadCard(ctx, t)
	if err != nil {
		return nil, reviews.Review{}, err
	}

	existing, ok := card.Find(fmt.Sprint(id))
	if !ok {
		return nil, reviews.Review{}, fmt.Errorf("no review %s", handle)
	}
	if !reviewflow.CanModify(app.session.Viewer(), existing) {
		return nil, reviews.Review{}, errNotYours
	}
	return card, existing, nil
}

func (app *application) confirm(prompt string) (bool, error) {
	fmt.Fprintf(app.errOut, "%s [y/N] ", prompt)
	line, err := app.lines.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (app *application) printCard(card *reviewflow.Card) error {
	if app.flags.json {
		return writeJSON(app.out, app.reviewViews(card.Rows()))
	}
	app.printReviews(app.out, card)
	return nil
}
