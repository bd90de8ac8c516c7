package schedule

import "errors"

// ErrOverlapInvariant indicates Assign computed a schedule in which three
// or more moves would be simultaneously active at some instant — a case
// spec.md leaves undefined, defensively rejected here (SPEC_FULL.md §4).
var ErrOverlapInvariant = errors.New("schedule: three or more moves would overlap simultaneously")
