package bulk_query_gen

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Order code letters. Each sorts ascending; a code applies its letters in
// sequence, each breaking ties left by the previous one.
const (
	OrderPrice    = 'p'
	OrderDuration = 'd'
	OrderStops    = 's'
)

const orderLetters = "pds"

// ValidateOrder rejects empty codes, unknown letters and repeated letters.
func ValidateOrder(code string) error {
	if code == "" {
		return errors.New("empty order code")
	}
	var seen [256]bool
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case OrderPrice, OrderDuration, OrderStops:
		default:
			return errors.Errorf("order code %q: unknown letter %q", code, c)
		}
		if seen[c] {
			return errors.Errorf("order code %q: repeated letter %q", code, c)
		}
		seen[c] = true
	}
	return nil
}

// RandOrder returns a random valid order code: a prefix of a shuffle of
// the three letters.
func RandOrder(rnd *rand.Rand) string {
	b := []byte(orderLetters)
	rnd.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b[:1+rnd.Intn(len(b))])
}
