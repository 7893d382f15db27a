package docpatch

// Result summarizes a successfully patched set of fields.
type Result struct {
	// Fields holds the new text of every field passed to Patch.
	Fields map[Field]string
	// ChangeCounts holds the number of raw changes applied per field.
	ChangeCounts map[Field]int
	// AppliedChangeCount is the total number of raw changes applied.
	AppliedChangeCount int
	// OptimizedChanges concatenates the optimized changes of every field in
	// Fields order.
	OptimizedChanges     []Change
	OptimizedChangeCount int
}

// SplitByField partitions changes by target field, keeping their relative
// order.
func SplitByField(changes []Change) map[Field][]Change {
	out := make(map[Field][]Change, len(Fields))
	for _, change := range changes {
		out[change.Field] = append(out[change.Field], change)
	}
	return out
}

// Patch validates changes per field against fields and, when every field is
// valid, applies them. The returned outcomes are keyed by field and only
// contain fields that received changes. When any outcome is invalid the
// Result is the zero value.
func Patch(fields map[Field]string, changes []Change) (Result, map[Field]Outcome) {
	byField := SplitByField(changes)

	outcomes := make(map[Field]Outcome, len(byField))
	valid := true
	for _, field := range Fields {
		batch, ok := byField[field]
		if !ok {
			continue
		}
		outcome := Validate(fields[field], batch)
		outcomes[field] = outcome
		valid = valid && outcome.Valid
	}
	if !valid {
		return Result{}, outcomes
	}

	result := Result{
		Fields:       make(map[Field]string, len(fields)),
		ChangeCounts: make(map[Field]int, len(Fields)),
	}
	for field, text := range fields {
		result.Fields[field] = text
	}

	for _, field := range Fields {
		batch := byField[field]
		result.ChangeCounts[field] = len(batch)
		if len(batch) == 0 {
			continue
		}

		optimized := Optimize(batch)
		result.OptimizedChanges = append(result.OptimizedChanges, optimized...)
		result.Fields[field] = Apply(fields[field], batch)
		result.AppliedChangeCount += len(batch)
	}
	result.OptimizedChangeCount = len(result.OptimizedChanges)

	return result, outcomes
}

// Errors flattens invalid outcomes in Fields order.
func Errors(outcomes map[Field]Outcome) []string {
	var errs []string
	for _, field := range Fields {
		if outcome, ok := outcomes[field]; ok && !outcome.Valid {
			errs = append(errs, outcome.Errors...)
		}
	}
	return errs
}
