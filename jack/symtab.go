// This file is part of jackc - https://github.com/db47h/jackc
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jack

import (
	"github.com/db47h/jackc/vm"
	"github.com/pkg/errors"
)

// Kind is the storage kind of a variable. Static and Field variables live in
// class scope, Arg and Local variables in subroutine scope.
type Kind int

// Variable storage kinds.
const (
	Static Kind = iota
	Field
	Arg
	Local
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "field"
	case Arg:
		return "argument"
	case Local:
		return "local"
	}
	return "invalid"
}

// Segment returns the VM memory segment backing variables of kind k.
func (k Kind) Segment() vm.Segment {
	switch k {
	case Static:
		return vm.Static
	case Field:
		return vm.This
	case Arg:
		return vm.Argument
	case Local:
		return vm.Local
	}
	return ""
}

// Var is a declared variable: its name, its declared type (a primitive or a
// class name), its storage kind and its running index within that kind.
type Var struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

// SymbolTable maps variable names to their kind, type and index over two
// nested scopes. A table serves a single class: Static and Field entries
// persist for the class's lifetime while Arg and Local entries are discarded
// on every StartSubroutine.
type SymbolTable struct {
	class  map[string]Var
	sub    map[string]Var
	counts [Local + 1]int
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		class: make(map[string]Var),
		sub:   make(map[string]Var),
	}
}

// StartSubroutine discards all subroutine scope entries and resets the Arg
// and Local counters.
func (s *SymbolTable) StartSubroutine() {
	s.sub = make(map[string]Var)
	s.counts[Arg] = 0
	s.counts[Local] = 0
}

// Define inserts a variable into the scope implied by its kind and assigns it
// the next running index for that kind. Defining a name twice in the same
// scope is an error; the previous definition is left untouched.
func (s *SymbolTable) Define(name, typ string, kind Kind) (Var, error) {
	scope, scopeName := s.class, "class"
	if kind == Arg || kind == Local {
		scope, scopeName = s.sub, "subroutine"
	}
	if _, ok := scope[name]; ok {
		return Var{}, errors.Errorf("%s already defined in %s scope", name, scopeName)
	}
	v := Var{Name: name, Type: typ, Kind: kind, Index: s.counts[kind]}
	s.counts[kind]++
	scope[name] = v
	return v, nil
}

// VarCount returns the number of variables of the given kind defined so far
// in their scope's lifetime.
func (s *SymbolTable) VarCount(kind Kind) int {
	return s.counts[kind]
}

// Lookup resolves name, preferring subroutine scope over class scope. It
// returns false when the name is defined in neither.
func (s *SymbolTable) Lookup(name string) (Var, bool) {
	if v, ok := s.sub[name]; ok {
		return v, true
	}
	v, ok := s.class[name]
	return v, ok
}
