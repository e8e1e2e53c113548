// Package clock provides an injectable time source so services can stamp
// createdAt/updatedAt deterministically under test.
package clock

import "time"

type Clock func() time.Time

func System() Clock {
	return func() time.Time { return time.Now().UTC() }
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
