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

package vm

import (
	"io"
	"strconv"

	"github.com/db47h/jackc/internal/jci"
)

// Writer appends VM instructions to an output stream, one per line, in the
// order received. Write errors are latched: emission keeps going and the
// first failure is reported by Err.
type Writer struct {
	w *jci.ErrWriter
}

// NewWriter returns a new Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: jci.NewErrWriter(w)}
}

func (w *Writer) command(s string) {
	w.w.WriteString(s)
	w.w.WriteString("\n")
}

// Push emits a push instruction for the given segment and index.
func (w *Writer) Push(s Segment, index int) {
	w.command("push " + string(s) + " " + strconv.Itoa(index))
}

// Pop emits a pop instruction for the given segment and index.
func (w *Writer) Pop(s Segment, index int) {
	w.command("pop " + string(s) + " " + strconv.Itoa(index))
}

// Arith emits an arithmetic or logic instruction.
func (w *Writer) Arith(op Op) {
	w.command(string(op))
}

// Label emits a label pseudo-instruction.
func (w *Writer) Label(l string) {
	w.command("label " + l)
}

// Goto emits an unconditional jump to l.
func (w *Writer) Goto(l string) {
	w.command("goto " + l)
}

// IfGoto emits a conditional jump to l, taken when the popped value is
// non-zero.
func (w *Writer) IfGoto(l string) {
	w.command("if-goto " + l)
}

// Call emits a call instruction with the given argument count.
func (w *Writer) Call(name string, nargs int) {
	w.command("call " + name + " " + strconv.Itoa(nargs))
}

// Function emits a function directive with the given local variable count.
func (w *Writer) Function(name string, nlocals int) {
	w.command("function " + name + " " + strconv.Itoa(nlocals))
}

// Return emits a return instruction.
func (w *Writer) Return() {
	w.command("return")
}

// Err returns the first error that occurred writing to the output, if any.
func (w *Writer) Err() error {
	return w.w.Err
}
