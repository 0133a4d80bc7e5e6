package ty

// Arena owns every compound node one analysis pass materializes: unions,
// shapes, generic defs and instances, unresolved placeholders. Ids are
// handed out monotonically and double as identity hashes. Nothing is freed
// individually; the pass drops the whole arena when it finishes, and no Ty
// may outlive the arena it was allocated from.
type Arena struct {
	nextID  uint64
	nextSym SymbolID
}

// NewArena returns an empty arena. Ids start at 1 so a zero id never
// collides with an arena-owned node.
func NewArena() *Arena {
	return &Arena{nextID: 1, nextSym: 1}
}

func (a *Arena) next() uint64 {
	id := a.nextID
	a.nextID++
	return id
}

// Count reports how many compound nodes the arena has handed out.
func (a *Arena) Count() int { return int(a.nextID - 1) }

// NewSymbol mints the identity for one unique-symbol creation site.
func (a *Arena) NewSymbol() UniqueSymbol {
	id := a.nextSym
	a.nextSym++
	return UniqueSymbol{ID: id}
}

// AllocUnion takes ownership of a built compound and wraps it as a Ty.
func (a *Arena) AllocUnion(u *UnionType) Union {
	u.id = a.next()
	return Union{Of: u}
}

// NewObject allocates a Record over the given properties.
func (a *Arena) NewObject(props []PropertyDef) Record {
	return Record{Shape: &ObjectShape{id: a.next(), Props: props}}
}

// NewFunction allocates a Function shape.
func (a *Arena) NewFunction(name string, params []Ty, ret Ty) Function {
	return Function{Shape: &FunctionShape{id: a.next(), Name: name, Params: params, Return: ret}}
}

// NewConstructor allocates a Constructor shape whose instances have type
// instance.
func (a *Arena) NewConstructor(name string, params []Ty, instance Ty) Constructor {
	return Constructor{Shape: &ConstructorShape{id: a.next(), Name: name, Params: params, Instance: instance}}
}

// NewInterface allocates an Interface shape.
func (a *Arena) NewInterface(name string, props []PropertyDef) Interface {
	return Interface{Shape: &InterfaceShape{id: a.next(), Name: name, Props: props}}
}

// NewIntersection allocates an Intersection over members.
func (a *Arena) NewIntersection(members []Ty) Intersection {
	return Intersection{Shape: &IntersectionShape{id: a.next(), Members: members}}
}

// NewNamespace allocates a Namespace with the given exports.
func (a *Arena) NewNamespace(name string, exports map[string]Ty) Namespace {
	return Namespace{Shape: &NamespaceShape{id: a.next(), Name: name, Exports: exports}}
}

// NewGeneric allocates an uninstantiated generic definition.
func (a *Arena) NewGeneric(name string, params []string) Generic {
	return Generic{Def: &GenericDef{id: a.next(), Name: name, Params: params}}
}

// NewIntrinsic allocates an intrinsic type definition.
func (a *Arena) NewIntrinsic(name string) Intrinsic {
	return Intrinsic{Def: &IntrinsicDef{id: a.next(), Name: name}}
}

// NewInstance allocates one instantiation of def. resolved is the concrete
// type the instance unwraps to; pass nil when resolution failed upstream.
func (a *Arena) NewInstance(def *GenericDef, args []Ty, resolved Ty) Instance {
	return Instance{Inst: &GenericInstance{id: a.next(), Def: def, Args: args, Resolved: resolved}}
}

// NewUnresolved allocates a fresh named placeholder. Every call yields a
// distinct identity, even for the same name.
func (a *Arena) NewUnresolved(name string) Unresolved {
	return Unresolved{Ref: &UnresolvedType{id: a.next(), Name: name}}
}
