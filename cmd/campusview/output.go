package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"campusview/internal/domain/reviews"
	"campusview/internal/params"
	"campusview/internal/reviewflow"
)

type listing[T any] struct {
	Items      []T               `json:"items"`
	Pagination params.Pagination `json:"pagination"`
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printPageFooter(w io.Writer, p params.Pagination) {
	if p.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "\npage %d of %d (%d total)", p.Page, p.TotalPages, p.Total)
	if p.HasNext {
		fmt.Fprintf(w, ", next: --page %d", p.Page+1)
	}
	fmt.Fprintln(w)
}

func score(section *reviews.ReviewSection) string {
	if section == nil || len(section.Reviews) == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", section.Score)
}

// reviewView is a rendered review as printed with --json.
type reviewView struct {
	Handle   string         `json:"handle"`
	Review   reviews.Review `json:"review"`
	Date     string         `json:"date"`
	Editable bool           `json:"editable"`
}

func (app *application) reviewViews(rows []reviewflow.Row) []reviewView {
	out := make([]reviewView, 0, len(rows))
	for _, row := range rows {
		out = append(out, reviewView{
			Handle:   app.handle(row.Review),
			Review:   row.Review,
			Date:     row.Date,
			Editable: row.Editable,
		})
	}
	return out
}

func (app *application) handle(r reviews.Review) string {
	h, err := app.handles.Encode(r.ReviewID)
	if err != nil {
		return r.IDString()
	}
	return h
}

func (app *application) printReviews(w io.Writer, card *reviewflow.Card) {
	rows := card.Rows()
	fmt.Fprintf(w, "\nReviews (%d)\n", len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(w, "  No reviews yet.")
	}

	for _, row := range rows {
		fmt.Fprintf(w, "  [%s] %s  %s  %s\n", app.handle(row.Review), row.Stars, row.Author, row.Date)
		if msg := strings.TrimSpace(row.Review.Message); msg != "" {
			fmt.Fprintf(w, "      %s\n", msg)
		}
		if row.Editable {
			fmt.Fprintf(w, "      edit: campusview reviews edit %s | delete: campusview reviews delete %s\n",
				app.handle(row.Review), app.handle(row.Review))
		}
	}

	if card.CanCompose() {
		fmt.Fprintln(w, "\n  Add a review with: campusview reviews add")
	}
}
