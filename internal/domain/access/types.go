package access

// Principal is the authenticated actor of a request. The zero value is the
// anonymous principal.
type Principal struct {
	ID   uint
	Name string
}

func (p Principal) Authenticated() bool { return p.ID != 0 }

func Anonymous() Principal { return Principal{} }
