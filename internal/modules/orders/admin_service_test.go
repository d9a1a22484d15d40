package orders

import (
	"errors"
	"testing"
)

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from   string
		action string
		want   string
		ok     bool
	}{
		{StatusPending, "process", StatusProcessing, true},
		{StatusProcessing, "ship", StatusShipped, true},
		{StatusShipped, "deliver", StatusDelivered, true},
		{StatusPending, "cancel", StatusCancelled, true},
		{StatusProcessing, "cancel", StatusCancelled, true},

		{StatusPending, "ship", "", false},
		{StatusPending, "deliver", "", false},
		{StatusShipped, "cancel", "", false},
		{StatusDelivered, "cancel", "", false},
		{StatusCancelled, "process", "", false},
		{StatusDelivered, "deliver", "", false},
		{StatusPending, "teleport", "", false},
	}
	for _, c := range cases {
		got, err := nextStatus(c.from, c.action)
		if c.ok {
			if err != nil {
				t.Errorf("%s + %s: unexpected error %v", c.from, c.action, err)
			}
			if got != c.want {
				t.Errorf("%s + %s: got %s, want %s", c.from, c.action, got, c.want)
			}
		} else {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s + %s: expected ErrInvalidTransition, got %v", c.from, c.action, err)
			}
		}
	}
}
