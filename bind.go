package thimble

// Bind registers id as an alias of target. Alias cycles are rejected when
// the registration that would close them is made.
func Bind(c *Container, id any, target any) error {
	return c.Register(id, TokenProvider{Token: target})
}

func MustBind(c *Container, id any, target any) {
	if err := Bind(c, id, target); err != nil {
		panic(err)
	}
}

// BindValue registers a constant under id.
func BindValue(c *Container, id any, value any) error {
	return c.Register(id, ValueProvider{Value: value})
}

// BindFactory registers a typed factory under id.
func BindFactory[T any](c *Container, id any, fn func(r Resolver) (T, error)) error {
	return c.Register(id, UseFactory(fn))
}
