package lazy

// Arena stores expression nodes and interned strings, the index-based
// mirror representation that LogicalPlan.ToALP lowers a plan's embedded
// expressions into for optimizer consumption.
type Arena struct {
	nodes      []Node
	strings    []string
	stringByID map[string]uint32
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{
		stringByID: make(map[string]uint32),
	}
}

// InternString stores s if not already present and returns its id.
func (a *Arena) InternString(s string) uint32 {
	if id, ok := a.stringByID[s]; ok {
		return id
	}
	id := uint32(len(a.strings))
	a.strings = append(a.strings, s)
	a.stringByID[s] = id
	return id
}

// String returns the interned string for id.
func (a *Arena) String(id uint32) (string, bool) {
	if int(id) >= len(a.strings) {
		return "", false
	}
	return a.strings[id], true
}

// Add inserts node and returns its id.
func (a *Arena) Add(node Node) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, node)
	return id
}

// Get returns the node for id.
func (a *Arena) Get(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(a.nodes) {
		return Node{}, false
	}
	return a.nodes[id], true
}

// MustGet returns the node for id, panicking if id is invalid.
func (a *Arena) MustGet(id NodeID) Node {
	node, ok := a.Get(id)
	if !ok {
		panic("lazy: invalid arena node id")
	}
	return node
}

// Transform replaces the node at id with fn's result and returns id
// unchanged (the arena mutates nodes in place so optimizer rewrites do not
// need to renumber downstream references).
func (a *Arena) Transform(id NodeID, fn func(Node) Node) NodeID {
	node := a.MustGet(id)
	a.nodes[id] = fn(node)
	return id
}

// WithChildren returns a new node id copying id's node with children
// replaced.
func (a *Arena) WithChildren(id NodeID, children []NodeID) NodeID {
	node := a.MustGet(id)
	node.Children = children
	return a.Add(node)
}

// AddColumn interns name and adds a column reference node.
func (a *Arena) AddColumn(name string) NodeID {
	return a.Add(Node{Kind: KindColumn, Payload: Column{NameID: a.InternString(name)}})
}

// AddLiteral adds a literal node.
func (a *Arena) AddLiteral(value interface{}) NodeID {
	return a.Add(Node{Kind: KindLiteral, Payload: Literal{Value: value}})
}

// AddBinary adds a binary operator node over left and right.
func (a *Arena) AddBinary(op BinaryOp, left, right NodeID) NodeID {
	return a.Add(Node{Kind: KindBinary, Payload: Binary{Op: op}, Children: []NodeID{left, right}})
}

// AddUnary adds a unary operator node over input.
func (a *Arena) AddUnary(op UnaryOp, input NodeID) NodeID {
	return a.Add(Node{Kind: KindUnary, Payload: Unary{Op: op}, Children: []NodeID{input}})
}

// AddAgg adds an aggregation node over input.
func (a *Arena) AddAgg(op AggOp, input NodeID) NodeID {
	return a.Add(Node{Kind: KindAgg, Payload: Agg{Op: op}, Children: []NodeID{input}})
}

// AddFunction interns name and adds an n-ary function node.
func (a *Arena) AddFunction(name string, args []NodeID) NodeID {
	return a.Add(Node{Kind: KindFunction, Payload: Function{NameID: a.InternString(name)}, Children: args})
}

// AddAlias interns name and adds an alias node over input.
func (a *Arena) AddAlias(name string, input NodeID) NodeID {
	return a.Add(Node{Kind: KindAlias, Payload: Alias{NameID: a.InternString(name)}, Children: []NodeID{input}})
}

// AddCast interns typeName and adds a cast node over input.
func (a *Arena) AddCast(typeName string, input NodeID) NodeID {
	return a.Add(Node{Kind: KindCast, Payload: Cast{TypeID: a.InternString(typeName)}, Children: []NodeID{input}})
}

// AddWindow adds a window node with fn as its payload. Children is [input]
// when hasInput is true and empty otherwise; no partitionBy/orderBy
// children are added here.
func (a *Arena) AddWindow(fn Window, input NodeID, hasInput bool) NodeID {
	children := []NodeID{}
	if hasInput {
		children = append(children, input)
	}
	return a.Add(Node{Kind: KindWindow, Payload: fn, Children: children})
}

// AddSort adds a sort-key-marker node over input.
func (a *Arena) AddSort(descending, nullsLast bool, input NodeID) NodeID {
	return a.Add(Node{Kind: KindSort, Payload: Sort{Descending: descending, NullsLast: nullsLast}, Children: []NodeID{input}})
}

// AddFilter adds a filter-expression-node (distinct from the LP-level
// Selection operator) wrapping predicate.
func (a *Arena) AddFilter(predicate NodeID) NodeID {
	return a.Add(Node{Kind: KindFilter, Payload: Filter{}, Children: []NodeID{predicate}})
}

// AddSlice adds an expression-level slice node over input.
func (a *Arena) AddSlice(offset, length int, input NodeID) NodeID {
	return a.Add(Node{Kind: KindSlice, Payload: Slice{Offset: offset, Length: length}, Children: []NodeID{input}})
}

// AddTernary adds a ternary operator node. Children are [expr, arg1, arg2].
func (a *Arena) AddTernary(op TernaryOp, expr, arg1, arg2 NodeID) NodeID {
	return a.Add(Node{Kind: KindTernary, Payload: Ternary{Op: op}, Children: []NodeID{expr, arg1, arg2}})
}

// AddWildcard adds a bare wildcard node.
func (a *Arena) AddWildcard() NodeID {
	return a.Add(Node{Kind: KindWildcard, Payload: Wildcard{}})
}

// AddExcept interns excluded and adds an except node.
func (a *Arena) AddExcept(excluded []string) NodeID {
	ids := make([]uint32, len(excluded))
	for i, name := range excluded {
		ids[i] = a.InternString(name)
	}
	return a.Add(Node{Kind: KindExcept, Payload: Except{ExcludedIDs: ids}})
}

// AddSortBy adds a sort-by node. Children are [target, by...]; descending
// parallels the by list position-for-position.
func (a *Arena) AddSortBy(descending []bool, target NodeID, by []NodeID) NodeID {
	children := append([]NodeID{target}, by...)
	return a.Add(Node{Kind: KindSortBy, Payload: SortBy{Descending: descending}, Children: children})
}

// AddTake adds a take node. Children are [input, index].
func (a *Arena) AddTake(input, idx NodeID) NodeID {
	return a.Add(Node{Kind: KindTake, Payload: Take{}, Children: []NodeID{input, idx}})
}

// AddShift adds a shift node over input.
func (a *Arena) AddShift(periods int, input NodeID) NodeID {
	return a.Add(Node{Kind: KindShift, Payload: Shift{Periods: periods}, Children: []NodeID{input}})
}

// AddBetween adds a between node. Children are [expr, lower, upper].
func (a *Arena) AddBetween(expr, lower, upper NodeID) NodeID {
	return a.Add(Node{Kind: KindBetween, Payload: Between{}, Children: []NodeID{expr, lower, upper}})
}

// AddIsIn adds an is-in node. Children are [expr, values...].
func (a *Arena) AddIsIn(expr NodeID, values []NodeID) NodeID {
	children := append([]NodeID{expr}, values...)
	return a.Add(Node{Kind: KindIsIn, Payload: IsIn{}, Children: children})
}

// AddWhenThen adds a conditional node. Children are [when, then] or
// [when, then, otherwise].
func (a *Arena) AddWhenThen(when, then NodeID, otherwise *NodeID) NodeID {
	children := []NodeID{when, then}
	if otherwise != nil {
		children = append(children, *otherwise)
	}
	return a.Add(Node{Kind: KindWhenThen, Payload: WhenThen{}, Children: children})
}

// AddQuantile adds a quantile node over input.
func (a *Arena) AddQuantile(value float64, input NodeID) NodeID {
	return a.Add(Node{Kind: KindQuantile, Payload: Quantile{Value: value}, Children: []NodeID{input}})
}

// AddBinaryFunction interns name and adds a two-argument named function node.
func (a *Arena) AddBinaryFunction(name string, left, right NodeID) NodeID {
	return a.Add(Node{Kind: KindBinaryFunction, Payload: BinaryFunction{NameID: a.InternString(name)}, Children: []NodeID{left, right}})
}

// AddTopK adds a top-k/bottom-k node over input.
func (a *Arena) AddTopK(k int, largest bool, input NodeID) NodeID {
	return a.Add(Node{Kind: KindTopK, Payload: TopK{K: k, Largest: largest}, Children: []NodeID{input}})
}
