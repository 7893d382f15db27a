package tgeneric

// MassConvert maps every item with convFunc. A nil input yields an empty,
// non-nil slice so JSON encodes it as [].
func MassConvert[T any, O any](items []T, convFunc func(T) O) []O {
	out := make([]O, len(items))
	for i, item := range items {
		out[i] = convFunc(item)
	}
	return out
}
