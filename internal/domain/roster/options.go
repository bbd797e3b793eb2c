package roster

// Option applies a configuration option to a Roster.
type Option func(*Roster)

// WithCapacity pre-sizes the roster for an expected participant count.
func WithCapacity(capacity int) Option {
	return func(r *Roster) {
		if capacity > 0 {
			r.emails = make([]string, 0, capacity)
			r.index = make(map[string]struct{}, capacity)
		}
	}
}
