// ==============================================================================================
// FILE: object/environment.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The environment/scope chain (§3): ordered bindings plus a parent link.
// ==============================================================================================

package object

// binding is one slot in a frame: a value plus its declared const-ness and the
// type name recorded at declaration time (§4.3).
type binding struct {
	value    Value
	isConst  bool
	typeName string
}

// Environment is a single lexical scope frame.
type Environment struct {
	names  []string
	slots  map[string]*binding
	parent *Environment
}

// NewEnvironment creates a fresh root frame (used for the global scope and for the
// process-wide calculator-memory scope).
func NewEnvironment() *Environment {
	return &Environment{slots: make(map[string]*binding)}
}

// NewEnclosedEnvironment creates a child frame linked to parent, used for function
// bodies, namespace bodies, blocks, and loop iterations.
func NewEnclosedEnvironment(parent *Environment) *Environment {
	env := NewEnvironment()
	env.parent = parent
	return env
}

// Get performs a parent-walking lookup.
func (e *Environment) Get(name string) (Value, bool) {
	if b, ok := e.slots[name]; ok {
		return b.value, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// HasLocal reports whether name is declared in this exact frame (not a parent).
func (e *Environment) HasLocal(name string) bool {
	_, ok := e.slots[name]
	return ok
}

// Declare binds a new name in this frame. Returns false if name is already bound
// here (redeclaration in the same frame is a diagnostic, §4.3, §8).
func (e *Environment) Declare(name string, val Value, isConst bool, typeName string) bool {
	if e.HasLocal(name) {
		return false
	}
	e.names = append(e.names, name)
	e.slots[name] = &binding{value: val, isConst: isConst, typeName: typeName}
	return true
}

// frameOf walks the parent chain to find the frame that owns name.
func (e *Environment) frameOf(name string) *Environment {
	if e.HasLocal(name) {
		return e
	}
	if e.parent != nil {
		return e.parent.frameOf(name)
	}
	return nil
}

// Assign updates an already-declared name in the nearest frame that owns it.
// Returns (ok, wasConst): ok is false if the name is undeclared anywhere, wasConst
// is true if the write was refused because the slot is const.
func (e *Environment) Assign(name string, val Value) (ok bool, wasConst bool) {
	frame := e.frameOf(name)
	if frame == nil {
		return false, false
	}
	b := frame.slots[name]
	if b.isConst {
		return true, true
	}
	b.value = val
	return true, false
}

// TypeNameOf returns the recorded declaration type name for name, if bound.
func (e *Environment) TypeNameOf(name string) (string, bool) {
	frame := e.frameOf(name)
	if frame == nil {
		return "", false
	}
	return frame.slots[name].typeName, true
}

// ConstOf reports whether name's nearest binding is declared const. The second
// return value is false if name is not bound anywhere.
func (e *Environment) ConstOf(name string) (bool, bool) {
	frame := e.frameOf(name)
	if frame == nil {
		return false, false
	}
	return frame.slots[name].isConst, true
}

// Annotate overwrites the type annotation of an existing binding in the current
// frame only (system.annotate, §4.4). Returns false if name is not local.
func (e *Environment) Annotate(name, typeName string) bool {
	b, ok := e.slots[name]
	if !ok {
		return false
	}
	b.typeName = typeName
	return true
}

// Names returns the locally declared names in declaration order.
func (e *Environment) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Parent exposes the enclosing frame, or nil for the root.
func (e *Environment) Parent() *Environment { return e.parent }
