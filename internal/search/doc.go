// Package search implements fuzzy entity search over Home Assistant state
// snapshots.
//
// The package provides three search modes operating on the same snapshot:
//
//   - SmartSearch: typo-tolerant fuzzy matching with substring bonuses,
//     threshold filtering and suggestions when nothing convincing is found
//   - ExactSearch: case-insensitive substring containment only
//   - PartialSearch: a plain paginated listing used as a last resort
//
// Scoring combines substring bonuses with a weighted blend of whole-string,
// windowed and token-sorted similarity ratios (see Score). All modes
// deduplicate by entity ID, paginate with uniform metadata (PageMeta) and
// are pure functions of their inputs, so the engine is safe for concurrent
// use without locks.
package search
