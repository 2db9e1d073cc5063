package extract

import "sort"

// Reduce groups occurrences by identity key and merges their locations into
// one Unit per key. Exact (file, line) duplicates collapse; genuinely
// distinct lines are all kept. The result is deterministic: units sorted by
// content, then kind, then plural content, and locations sorted by file then
// line.
func Reduce(occs []Occurrence) []Unit {
	groups := make(map[Key][]Location)
	seen := make(map[Key]map[Location]struct{})

	for _, o := range occs {
		k := o.key()
		loc := Location{File: o.File, Line: o.Line}

		if seen[k] == nil {
			seen[k] = make(map[Location]struct{})
		}

		if _, dup := seen[k][loc]; dup {
			continue
		}

		seen[k][loc] = struct{}{}
		groups[k] = append(groups[k], loc)
	}

	units := make([]Unit, 0, len(groups))

	for k, locs := range groups {
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].File != locs[j].File {
				return locs[i].File < locs[j].File
			}

			return locs[i].Line < locs[j].Line
		})

		units = append(units, Unit{
			Content:       k.Content,
			Kind:          k.Kind,
			PluralContent: k.PluralContent,
			Locations:     locs,
		})
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].Content != units[j].Content {
			return units[i].Content < units[j].Content
		}

		if units[i].Kind != units[j].Kind {
			return units[i].Kind < units[j].Kind
		}

		return units[i].PluralContent < units[j].PluralContent
	})

	return units
}

// ReferenceMap builds the key to locations index the reference rewriter
// consumes.
func ReferenceMap(units []Unit) map[Key][]Location {
	refs := make(map[Key][]Location, len(units))

	for _, u := range units {
		refs[u.Key()] = u.Locations
	}

	return refs
}
