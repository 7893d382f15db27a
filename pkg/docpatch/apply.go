package docpatch

// Apply folds changes over text in order. Each change sees the text produced
// by the previous one, so positions are relative to the progressively edited
// text rather than the original.
//
// Callers are expected to have run Validate first. Apply still clamps every
// position and length into range and never panics.
func Apply(text string, changes []Change) string {
	current := []rune(text)
	for _, change := range changes {
		current = applyOne(current, change)
	}
	return string(current)
}

func applyOne(current []rune, change Change) []rune {
	position, length, text := change.Op.span()
	pol := policyOf(change.Kind())

	start := clamp(position, len(current))
	end := start
	if pol.Consumes {
		end = start + clamp(length, len(current)-start)
	}

	var insertion []rune
	if pol.Inserts {
		insertion = []rune(text)
	}

	out := make([]rune, 0, len(current)-(end-start)+len(insertion))
	out = append(out, current[:start]...)
	out = append(out, insertion...)
	out = append(out, current[end:]...)
	return out
}

func clamp(v, upper int) int {
	return max(0, min(v, upper))
}
