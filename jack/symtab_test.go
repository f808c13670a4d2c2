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

package jack_test

import (
	"testing"

	"github.com/db47h/jackc/jack"
	"github.com/db47h/jackc/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable_indices(t *testing.T) {
	s := jack.NewSymbolTable()

	v, err := s.Define("a", "int", jack.Static)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	v, err = s.Define("b", "int", jack.Field)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
	v, err = s.Define("c", "boolean", jack.Field)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index)
	v, err = s.Define("d", "int", jack.Static)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Index)

	assert.Equal(t, 2, s.VarCount(jack.Static))
	assert.Equal(t, 2, s.VarCount(jack.Field))
	assert.Equal(t, 0, s.VarCount(jack.Arg))
	assert.Equal(t, 0, s.VarCount(jack.Local))
}

func TestSymbolTable_scopes(t *testing.T) {
	s := jack.NewSymbolTable()

	_, err := s.Define("x", "int", jack.Field)
	require.NoError(t, err)
	_, err = s.Define("y", "int", jack.Field)
	require.NoError(t, err)

	s.StartSubroutine()
	_, err = s.Define("x", "Point", jack.Arg)
	require.NoError(t, err, "subroutine scope may shadow class scope")

	// subroutine scope checked first
	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, jack.Arg, v.Kind)
	assert.Equal(t, "Point", v.Type)

	// class scope still reachable for unshadowed names
	v, ok = s.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, jack.Field, v.Kind)

	_, ok = s.Lookup("z")
	assert.False(t, ok)

	// a new subroutine drops the shadowing entry
	s.StartSubroutine()
	v, ok = s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, jack.Field, v.Kind)
}

func TestSymbolTable_startSubroutine(t *testing.T) {
	s := jack.NewSymbolTable()

	_, err := s.Define("f", "int", jack.Field)
	require.NoError(t, err)

	s.StartSubroutine()
	s.Define("a", "int", jack.Arg)
	s.Define("b", "int", jack.Local)
	s.Define("c", "int", jack.Local)
	assert.Equal(t, 1, s.VarCount(jack.Arg))
	assert.Equal(t, 2, s.VarCount(jack.Local))

	// Arg and Local counters reset, Static and Field counters persist
	s.StartSubroutine()
	assert.Equal(t, 0, s.VarCount(jack.Arg))
	assert.Equal(t, 0, s.VarCount(jack.Local))
	assert.Equal(t, 1, s.VarCount(jack.Field))

	v, err := s.Define("d", "int", jack.Local)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index, "indices restart at 0 in a fresh subroutine")
}

func TestSymbolTable_redefine(t *testing.T) {
	s := jack.NewSymbolTable()

	_, err := s.Define("x", "int", jack.Field)
	require.NoError(t, err)
	_, err = s.Define("x", "int", jack.Static)
	require.EqualError(t, err, "x already defined in class scope")

	s.StartSubroutine()
	_, err = s.Define("a", "int", jack.Arg)
	require.NoError(t, err)
	_, err = s.Define("a", "int", jack.Local)
	require.EqualError(t, err, "a already defined in subroutine scope")

	// the failed definitions must not have consumed an index
	v, err := s.Define("y", "int", jack.Static)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Index)
}

func TestKind_segment(t *testing.T) {
	assert.Equal(t, vm.Static, jack.Static.Segment())
	assert.Equal(t, vm.This, jack.Field.Segment())
	assert.Equal(t, vm.Argument, jack.Arg.Segment())
	assert.Equal(t, vm.Local, jack.Local.Segment())
}
