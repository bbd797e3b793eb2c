// Package roster implements the ordered-unique participant list backing
// each activity.
package roster

// Roster holds an activity's participant emails. It preserves signup
// order for listing while keeping membership checks constant time.
//
// A Roster is not safe for concurrent use on its own; the registry
// store serializes access under its lock.
type Roster struct {
	emails []string
	index  map[string]struct{}
}

// New creates an empty roster.
func New(opts ...Option) *Roster {
	r := &Roster{}

	for _, opt := range opts {
		opt(r)
	}

	if r.emails == nil {
		r.emails = make([]string, 0)
	}
	if r.index == nil {
		r.index = make(map[string]struct{})
	}

	return r
}

// Add appends email to the roster. It returns false without modifying
// anything when the email is already present.
func (r *Roster) Add(email string) bool {
	if _, exists := r.index[email]; exists {
		return false
	}
	r.index[email] = struct{}{}
	r.emails = append(r.emails, email)
	return true
}

// Remove deletes exactly one occurrence of email, keeping the relative
// order of the remaining entries. It returns false when the email is
// not present.
func (r *Roster) Remove(email string) bool {
	if _, exists := r.index[email]; !exists {
		return false
	}
	delete(r.index, email)
	for i, e := range r.emails {
		if e == email {
			r.emails = append(r.emails[:i], r.emails[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether email is on the roster.
func (r *Roster) Contains(email string) bool {
	_, exists := r.index[email]
	return exists
}

// Emails returns a copy of the roster in signup order.
func (r *Roster) Emails() []string {
	out := make([]string, len(r.emails))
	copy(out, r.emails)
	return out
}

// Len returns the number of participants.
func (r *Roster) Len() int {
	return len(r.emails)
}
