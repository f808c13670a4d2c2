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

// Package vm defines the instruction vocabulary of the target stack machine
// and a Writer that appends instructions, one per line, to an output stream.
//
// The instruction grammar is:
//
//	push <segment> <index>
//	pop <segment> <index>
//	<op>                     with op one of add, sub, neg, and, or, not, eq, lt, gt
//	label <L>
//	goto <L>
//	if-goto <L>
//	call <name> <nargs>
//	function <name> <nlocals>
//	return
//
// Memory is addressed through eight named segments: local, argument, static,
// this, that, pointer, temp and constant. The constant segment is virtual:
// pushing constant n places the literal n on the stack.
package vm
