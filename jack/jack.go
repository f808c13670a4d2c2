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
	"io"
	"text/scanner"

	"github.com/db47h/jackc/vm"
	"github.com/pkg/errors"
)

// Error is a compiler diagnostic tied to a source position. It renders as
// file:line:column: message.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Compile reads one Jack class from r and writes the corresponding VM code to
// w.
//
// The name parameter is used in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Compilation is single pass: instructions are written to w as productions
// are recognised, so on error w may hold a truncated prefix of the class's
// code.
func Compile(name string, r io.Reader, w io.Writer) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	e := &engine{
		toks:  NewTokenizer(name, string(src)),
		table: NewSymbolTable(),
		out:   vm.NewWriter(w),
	}
	if err := e.toks.Advance(); err != nil {
		return err
	}
	if err := e.compileClass(); err != nil {
		return err
	}
	if t := e.toks.Token(); t.Type != EOF {
		return &Error{t.Pos, "Unexpected " + describe(t) + " after class"}
	}
	return e.out.Err()
}
