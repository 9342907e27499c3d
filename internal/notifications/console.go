package notifications

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Console prints notices, the terminal stand-in for a blocking alert.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(_ context.Context, n Notice) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n.Body == "" {
		_, err := fmt.Fprintln(c.w, n.Title)
		return err
	}
	_, err := fmt.Fprintf(c.w, "%s: %s\n", n.Title, n.Body)
	return err
}
