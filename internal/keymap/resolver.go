package keymap

// Conflict records a key bound to two actions in the same context. The
// binding listed first keeps the key.
type Conflict struct {
	Key     string
	Context string
	Kept    Action
	Dropped Action
}

// Resolver maps keys to actions per context. Contexts are searched in the
// order they first appear in the bindings, so a global binding shadows a
// tab binding of the same key.
type Resolver struct {
	contexts  []string
	byContext map[string]map[string]Action // context -> key -> action
	byAction  map[Action][]string          // action -> keys, for help
	conflicts []Conflict
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byContext: make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
	}
	for _, b := range bindings {
		keys, ok := r.byContext[b.Context]
		if !ok {
			keys = make(map[string]Action)
			r.byContext[b.Context] = keys
			r.contexts = append(r.contexts, b.Context)
		}
		for _, key := range b.Keys {
			if prev, taken := keys[key]; taken && prev != b.Action {
				r.conflicts = append(r.conflicts, Conflict{
					Key: key, Context: b.Context, Kept: prev, Dropped: b.Action,
				})
				continue
			}
			keys[key] = b.Action
			r.byAction[b.Action] = appendUnique(r.byAction[b.Action], key)
		}
	}
	return r
}

// Resolve returns the action bound to key in any context, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.ResolveIn(key, r.contexts...)
}

// ResolveIn returns the action bound to key in the first of contexts that
// binds it, or "".
func (r *Resolver) ResolveIn(key string, contexts ...string) Action {
	for _, c := range contexts {
		if a, ok := r.byContext[c][key]; ok {
			return a
		}
	}
	return ""
}

// KeysFor returns the keys bound to action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Contexts returns the contexts in lookup order.
func (r *Resolver) Contexts() []string {
	return append([]string(nil), r.contexts...)
}

// Conflicts returns the keys that were bound twice within a context.
func (r *Resolver) Conflicts() []Conflict {
	return r.conflicts
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
