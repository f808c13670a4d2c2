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

package vm_test

import (
	"strings"
	"testing"

	"github.com/db47h/jackc/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var sb strings.Builder
	w := vm.NewWriter(&sb)

	w.Function("Main.main", 2)
	w.Push(vm.Constant, 7)
	w.Pop(vm.Local, 0)
	w.Label("L0")
	w.Push(vm.Local, 0)
	w.Arith(vm.Not)
	w.IfGoto("L1")
	w.Push(vm.This, 3)
	w.Push(vm.Argument, 1)
	w.Arith(vm.Add)
	w.Pop(vm.Temp, 0)
	w.Goto("L0")
	w.Label("L1")
	w.Call("Math.multiply", 2)
	w.Return()
	require.NoError(t, w.Err())

	want := `function Main.main 2
push constant 7
pop local 0
label L0
push local 0
not
if-goto L1
push this 3
push argument 1
add
pop temp 0
goto L0
label L1
call Math.multiply 2
return
`
	assert.Equal(t, want, sb.String())
}

// failWriter fails every write after the first n.
type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestWriter_err(t *testing.T) {
	w := vm.NewWriter(&failWriter{n: 2})
	require.NoError(t, w.Err())

	w.Push(vm.Constant, 1)
	require.NoError(t, w.Err())

	// emission keeps going after a failure, the first error sticks
	w.Arith(vm.Neg)
	w.Return()
	w.Label("L0")
	err := w.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "disk full")
}
