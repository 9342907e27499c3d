package reviewflow

import "campusview/internal/domain/reviews"

// Row is one rendered review.
type Row struct {
	Review reviews.Review
	Date   string
	Stars  string
	Author string
	// Editable gates the edit and delete controls.
	Editable bool
}

// Rows renders the cache for the current viewer.
func (c *Card) Rows() []Row {
	viewer := c.cfg.Viewer()
	cached := c.Reviews()

	rows := make([]Row, 0, len(cached))
	for _, r := range cached {
		rows = append(rows, RenderRow(viewer, r))
	}
	return rows
}

func RenderRow(v Viewer, r reviews.Review) Row {
	row := Row{
		Review:   r,
		Stars:    Stars(int(r.Rating)),
		Author:   "By " + r.User,
		Editable: CanModify(v, r),
	}
	if posted, err := r.Posted(); err == nil {
		row.Date = posted.Format("1/2/2006")
	}
	return row
}
