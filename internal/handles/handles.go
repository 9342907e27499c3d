// Package handles gives reviews short names that are easier to type than
// their numeric ids.
package handles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/speps/go-hashids/v2"
)

// Letters only, so a handle can never be mistaken for a numeric id.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const minLength = 5

var ErrInvalidHandle = errors.New("invalid review handle")

type Codec struct {
	h *hashids.HashID
}

func New(salt string) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.Alphabet = alphabet
	hd.MinLength = minLength

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: negative id %d", ErrInvalidHandle, id)
	}
	return c.h.EncodeInt64([]int64{id})
}

func (c *Codec) Decode(handle string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(handle)
	if err != nil || len(ids) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return ids[0], nil
}

// Parse accepts either a numeric review id or a handle.
func (c *Codec) Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidHandle
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id < 0 {
			return 0, fmt.Errorf("%w: negative id %d", ErrInvalidHandle, id)
		}
		return id, nil
	}
	return c.Decode(s)
}
