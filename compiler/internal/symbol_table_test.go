package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable_Declare(t *testing.T) {
	table := NewSymbolTable()
	desc, ok := table.Declare("a", BooleanVariableType)
	assert.True(t, ok)
	assert.Equal(t, "a", desc.Name())
	assert.Equal(t, BooleanVariableType, desc.VariableType())
	assert.Equal(t, 0, desc.Index())

	desc, ok = table.Declare("b", CharVariableType)
	assert.True(t, ok)
	assert.Equal(t, 1, desc.Index())

	// The first declaration wins.
	desc, ok = table.Declare("a", CharVariableType)
	assert.False(t, ok)
	assert.Equal(t, BooleanVariableType, desc.VariableType())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Names())
}

func TestSymbolTable_LookUp(t *testing.T) {
	table := NewSymbolTable()
	table.Declare("c", CharVariableType)

	tp, ok := table.LookUpType("c")
	assert.True(t, ok)
	assert.Equal(t, CharVariableType, tp)

	tp, ok = table.LookUpType("C")
	assert.False(t, ok)
	assert.Equal(t, UnknownVariableType, tp)

	assert.NotNil(t, table.LookUp("c"))
	assert.Nil(t, table.LookUp("d"))
}

func TestSymbolTable_Symbols(t *testing.T) {
	table := NewSymbolTable()
	for _, name := range []string{"z", "y", "x"} {
		table.Declare(name, BooleanVariableType)
	}
	symbols := table.Symbols()
	assert.Len(t, symbols, 3)
	assert.Equal(t, "z", symbols[0].Name())
	assert.Equal(t, "x", symbols[2].Name())

	// The returned slice is a copy.
	symbols[0] = nil
	assert.NotNil(t, table.Symbols()[0])
	assert.Equal(t, 0, NewSymbolTable().Len())
	assert.Equal(t, []string{}, NewSymbolTable().Names())
}
