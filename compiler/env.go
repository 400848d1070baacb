package compiler

// Env maps a local name (a supercombinator parameter or a let/letrec
// binder) to its offset from the stack top at the point of reference.
// Offsets are relative, not absolute: whenever the compiler emits an
// instruction that grows the stack by k, every existing binding's
// offset must be shifted by k before continuing (spec.md §4.2).
// Globals are not entered in Env; they are resolved by name at
// runtime via Pushglobal.
type Env struct {
	vars map[string]int
}

// NewEnv creates an environment from a parameter list, x1 at offset 0
// through xn at offset n-1, matching the R-scheme's ρ.
func NewEnv(params []string) *Env {
	e := &Env{vars: make(map[string]int, len(params))}
	for i, p := range params {
		e.vars[p] = i
	}
	return e
}

// Lookup returns the offset of name, if it is a local.
func (e *Env) Lookup(name string) (int, bool) {
	off, ok := e.vars[name]
	return off, ok
}

// Shifted returns a new environment with every offset increased by n,
// used whenever the compiler emits instructions that grow the stack
// ahead of compiling a subexpression.
func (e *Env) Shifted(n int) *Env {
	ne := &Env{vars: make(map[string]int, len(e.vars))}
	for k, v := range e.vars {
		ne.vars[k] = v + n
	}
	return ne
}

// Extended returns a new environment with name bound at offset off and
// every existing binding shifted up by one — the common case of
// "push one thing, then compile the rest with the new top in scope".
func (e *Env) Extended(name string, off int) *Env {
	ne := e.Shifted(1)
	ne.vars[name] = off
	return ne
}

// WithBindings returns a new environment with the given name->offset
// pairs added (or overriding existing ones), without shifting
// anything else — used when Alloc has already reserved a known block
// of offsets for a letrec group.
func (e *Env) WithBindings(bindings map[string]int) *Env {
	ne := &Env{vars: make(map[string]int, len(e.vars)+len(bindings))}
	for k, v := range e.vars {
		ne.vars[k] = v
	}
	for k, v := range bindings {
		ne.vars[k] = v
	}
	return ne
}
