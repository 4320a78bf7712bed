// SPDX-License-Identifier: MIT

package term

// Uses is the usage annotation carried by an All-bound variable
// (spec.md §3, Branch::All(Uses) in original_source/src/valus/dag.rs).
// It is read-out/pretty-printed but not otherwise interpreted by the
// reducer core — quantitative-usage checking belongs to the type checker,
// which spec.md §1 explicitly places out of scope.
type Uses uint8

const (
	UsesErase Uses = iota
	UsesAffine
	UsesLinear
	UsesMany
)

func (u Uses) String() string {
	switch u {
	case UsesErase:
		return "0"
	case UsesAffine:
		return "&"
	case UsesLinear:
		return "1"
	case UsesMany:
		return "ω"
	default:
		return "?"
	}
}

func ParseUses(s string) (Uses, bool) {
	switch s {
	case "0":
		return UsesErase, true
	case "&":
		return UsesAffine, true
	case "1":
		return UsesLinear, true
	case "", "ω", "w":
		return UsesMany, true
	default:
		return 0, false
	}
}
