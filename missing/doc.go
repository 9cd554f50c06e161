// Package missing converts between the NaN missing-value sentinel and an
// explicit 0/1 indicator mask.
//
// ToZero replaces every NaN in a matrix with 0 (in place) and returns the
// mask with 1 where a value was missing. ToNaN is the inverse. The iterative
// decomposition engines call ToZero once per input on their own private
// copy, then use Observed (1 where present) to keep missing cells out of
// every sum.
package missing
