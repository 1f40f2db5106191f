package internal

// SymbolTable is the single flat scope of a charon program: every variable is global and
// must be declared before it is used. A table belongs to one check pass.
type SymbolTable struct {
	symbols map[string]*SymbolDesc
	order   []*SymbolDesc
}

type SymbolDesc struct {
	name         string
	variableType VariableType
	index        int // declaration order, starting at 0
}

func (desc *SymbolDesc) Name() string               { return desc.name }
func (desc *SymbolDesc) VariableType() VariableType { return desc.variableType }
func (desc *SymbolDesc) Index() int                 { return desc.index }

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*SymbolDesc)}
}

// Declare adds name with type tp. If name already exists the table is left untouched, the
// existing desc is returned and ok is false: the first declaration wins.
func (table *SymbolTable) Declare(name string, tp VariableType) (desc *SymbolDesc, ok bool) {
	if existing, found := table.symbols[name]; found {
		return existing, false
	}
	desc = &SymbolDesc{name: name, variableType: tp, index: len(table.order)}
	table.symbols[name] = desc
	table.order = append(table.order, desc)
	return desc, true
}

func (table *SymbolTable) LookUp(name string) *SymbolDesc {
	return table.symbols[name]
}

// LookUpType returns the declared type of name, UnknownVariableType when it isn't declared.
func (table *SymbolTable) LookUpType(name string) (VariableType, bool) {
	desc, ok := table.symbols[name]
	if !ok {
		return UnknownVariableType, false
	}
	return desc.variableType, true
}

func (table *SymbolTable) Len() int {
	return len(table.order)
}

// Symbols returns the symbols in declaration order.
func (table *SymbolTable) Symbols() []*SymbolDesc {
	ret := make([]*SymbolDesc, len(table.order))
	copy(ret, table.order)
	return ret
}

func (table *SymbolTable) Names() []string {
	names := make([]string, 0, len(table.order))
	for _, desc := range table.order {
		names = append(names, desc.name)
	}
	return names
}
