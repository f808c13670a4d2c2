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

// Package jack compiles Jack source code to VM code for the target stack
// machine.
//
// Jack is a small class based language. A compilation unit is a single class:
//
//	class:         'class' className '{' classVarDec* subroutineDec* '}'
//	classVarDec:   ('static'|'field') type varName (',' varName)* ';'
//	subroutineDec: ('constructor'|'function'|'method') ('void'|type)
//	               subroutineName '(' parameterList ')' subroutineBody
//	parameterList: ((type varName) (',' type varName)*)?
//	subroutineBody:'{' varDec* statements '}'
//	varDec:        'var' type varName (',' varName)* ';'
//	statement:     letStatement | ifStatement | whileStatement | doStatement
//	               | returnStatement
//	expression:    term (op term)*
//	term:          integerConstant | stringConstant | keywordConstant
//	               | varName | varName '[' expression ']' | subroutineCall
//	               | '(' expression ')' | unaryOp term
//
// Comments are discarded by the tokenizer: both // line comments and
// (non-nesting) /* */ block comments, including /** doc comments.
//
// Compilation is a single pass. The engine parses by recursive descent and
// emits VM instructions as it goes; there is no intermediate syntax tree.
// Expressions compile strictly left to right with no operator precedence, so
//
//	1 + 2 * 3
//
// evaluates as (1 + 2) * 3. Parenthesize where order matters.
//
// Variables are resolved through a two scope symbol table. Static and field
// variables belong to the class scope, arguments and locals to the subroutine
// scope; the subroutine scope shadows the class scope. Each variable gets a
// running index within its kind, which becomes its index in the backing VM
// segment:
//
//	kind	segment
//	static	static
//	field	this
//	arg	argument
//	var	local
//
// Methods receive the instance as argument 0 and set pointer 0 from it on
// entry; constructors allocate one word per field through Memory.alloc and
// return the new instance. Multiplication, division and string constants
// lower to calls into the standard OS classes Math and String.
package jack
