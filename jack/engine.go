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
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/jackc/vm"
)

// engine is the recursive descent parser and code emitter. Every production
// both validates tokens and writes instructions, in a single pass over the
// token stream. Labels for control flow are drawn from a counter unique to
// the class being compiled.
type engine struct {
	toks   *Tokenizer
	table  *SymbolTable
	out    *vm.Writer
	class  string
	labels int
}

func (e *engine) tok() Token {
	return e.toks.Token()
}

// at reports whether the current token is the given keyword or symbol.
func (e *engine) at(text string) bool {
	t := e.toks.Token()
	return (t.Type == Keyword || t.Type == Symbol) && t.Text == text
}

func describe(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return t.Type.String() + " " + strconv.Quote(t.Text)
}

func (e *engine) expected(what string) error {
	return &Error{e.tok().Pos, "Expected " + what + ", got " + describe(e.tok())}
}

// eat consumes the current token if its text is one of want and advances;
// otherwise it reports a mismatch without consuming anything, so that callers
// selecting between grammar alternatives can try the next one.
func (e *engine) eat(want ...string) (string, error) {
	for _, w := range want {
		if e.at(w) {
			return w, e.toks.Advance()
		}
	}
	q := make([]string, len(want))
	for i, w := range want {
		q[i] = strconv.Quote(w)
	}
	return "", e.expected(strings.Join(q, " or "))
}

func (e *engine) eatIdent() (string, error) {
	t := e.tok()
	if t.Type != Identifier {
		return "", e.expected("identifier")
	}
	return t.Text, e.toks.Advance()
}

// eatType consumes a primitive type keyword or a class name.
func (e *engine) eatType() (string, error) {
	t := e.tok()
	if t.Type == Identifier || t.Type == Keyword && (t.Text == "int" || t.Text == "char" || t.Text == "boolean") {
		return t.Text, e.toks.Advance()
	}
	return "", e.expected("type name")
}

// define inserts a variable in the symbol table, turning a redefinition into
// a positioned diagnostic.
func (e *engine) define(name, typ string, kind Kind, pos scanner.Position) (Var, error) {
	v, err := e.table.Define(name, typ, kind)
	if err != nil {
		return v, &Error{pos, err.Error()}
	}
	return v, nil
}

func (e *engine) newLabel() string {
	l := "L" + strconv.Itoa(e.labels)
	e.labels++
	return l
}

// class: 'class' className '{' classVarDec* subroutineDec* '}'
func (e *engine) compileClass() error {
	if _, err := e.eat("class"); err != nil {
		return err
	}
	name, err := e.eatIdent()
	if err != nil {
		return err
	}
	e.class = name
	if _, err = e.eat("{"); err != nil {
		return err
	}
	for e.at("static") || e.at("field") {
		if err = e.compileClassVarDec(); err != nil {
			return err
		}
	}
	for e.at("constructor") || e.at("function") || e.at("method") {
		if err = e.compileSubroutine(); err != nil {
			return err
		}
	}
	_, err = e.eat("}")
	return err
}

// classVarDec: ('static'|'field') type varName (',' varName)* ';'
func (e *engine) compileClassVarDec() error {
	kw, err := e.eat("static", "field")
	if err != nil {
		return err
	}
	kind := Static
	if kw == "field" {
		kind = Field
	}
	typ, err := e.eatType()
	if err != nil {
		return err
	}
	return e.compileVarNames(typ, kind)
}

// varName (',' varName)* ';' with each name defined as kind.
func (e *engine) compileVarNames(typ string, kind Kind) error {
	for {
		pos := e.tok().Pos
		name, err := e.eatIdent()
		if err != nil {
			return err
		}
		if _, err = e.define(name, typ, kind, pos); err != nil {
			return err
		}
		if !e.at(",") {
			break
		}
		if _, err = e.eat(","); err != nil {
			return err
		}
	}
	_, err := e.eat(";")
	return err
}

// subroutineDec: ('constructor'|'function'|'method') ('void'|type)
// subroutineName '(' parameterList ')' subroutineBody
func (e *engine) compileSubroutine() error {
	kw, err := e.eat("constructor", "function", "method")
	if err != nil {
		return err
	}
	e.table.StartSubroutine()
	if kw == "method" {
		// the receiver occupies argument 0
		if _, err = e.table.Define("this", e.class, Arg); err != nil {
			return &Error{e.tok().Pos, err.Error()}
		}
	}
	if e.at("void") {
		err = e.toks.Advance()
	} else {
		_, err = e.eatType()
	}
	if err != nil {
		return err
	}
	name, err := e.eatIdent()
	if err != nil {
		return err
	}
	if _, err = e.eat("("); err != nil {
		return err
	}
	if err = e.compileParameterList(); err != nil {
		return err
	}
	if _, err = e.eat(")"); err != nil {
		return err
	}
	return e.compileBody(name, kw)
}

// parameterList: ((type varName) (',' type varName)*)?
func (e *engine) compileParameterList() error {
	if e.at(")") {
		return nil
	}
	for {
		typ, err := e.eatType()
		if err != nil {
			return err
		}
		pos := e.tok().Pos
		name, err := e.eatIdent()
		if err != nil {
			return err
		}
		if _, err = e.define(name, typ, Arg, pos); err != nil {
			return err
		}
		if !e.at(",") {
			return nil
		}
		if _, err = e.eat(","); err != nil {
			return err
		}
	}
}

// subroutineBody: '{' varDec* statements '}'
//
// The var declarations are parsed before anything is emitted: the function
// directive carries the local count and must precede the body's code.
func (e *engine) compileBody(name, kw string) error {
	if _, err := e.eat("{"); err != nil {
		return err
	}
	for e.at("var") {
		if err := e.compileVarDec(); err != nil {
			return err
		}
	}
	e.out.Function(e.class+"."+name, e.table.VarCount(Local))
	switch kw {
	case "constructor":
		e.out.Push(vm.Constant, e.table.VarCount(Field))
		e.out.Call("Memory.alloc", 1)
		e.out.Pop(vm.Pointer, 0)
	case "method":
		e.out.Push(vm.Argument, 0)
		e.out.Pop(vm.Pointer, 0)
	}
	if err := e.compileStatements(); err != nil {
		return err
	}
	_, err := e.eat("}")
	return err
}

// varDec: 'var' type varName (',' varName)* ';'
func (e *engine) compileVarDec() error {
	if _, err := e.eat("var"); err != nil {
		return err
	}
	typ, err := e.eatType()
	if err != nil {
		return err
	}
	return e.compileVarNames(typ, Local)
}

// statements: statement* with dispatch on the leading keyword. Any other
// token ends the sequence.
func (e *engine) compileStatements() error {
	for {
		var err error
		switch {
		case e.at("let"):
			err = e.compileLet()
		case e.at("if"):
			err = e.compileIf()
		case e.at("while"):
			err = e.compileWhile()
		case e.at("do"):
			err = e.compileDo()
		case e.at("return"):
			err = e.compileReturn()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// letStatement: 'let' varName ('[' expression ']')? '=' expression ';'
//
// For an indexed target, the element address (base plus index) is computed
// before the right hand side, then the stored sequence goes through temp 0 so
// that pointer 1 can be set with the value preserved.
func (e *engine) compileLet() error {
	if _, err := e.eat("let"); err != nil {
		return err
	}
	pos := e.tok().Pos
	name, err := e.eatIdent()
	if err != nil {
		return err
	}
	v, ok := e.table.Lookup(name)
	if !ok {
		return &Error{pos, "Undefined variable " + name}
	}
	indexed := false
	if e.at("[") {
		indexed = true
		if _, err = e.eat("["); err != nil {
			return err
		}
		e.out.Push(v.Kind.Segment(), v.Index)
		if err = e.compileExpression(); err != nil {
			return err
		}
		if _, err = e.eat("]"); err != nil {
			return err
		}
		e.out.Arith(vm.Add)
	}
	if _, err = e.eat("="); err != nil {
		return err
	}
	if err = e.compileExpression(); err != nil {
		return err
	}
	if _, err = e.eat(";"); err != nil {
		return err
	}
	if indexed {
		e.out.Pop(vm.Temp, 0)
		e.out.Pop(vm.Pointer, 1)
		e.out.Push(vm.Temp, 0)
		e.out.Pop(vm.That, 0)
	} else {
		e.out.Pop(v.Kind.Segment(), v.Index)
	}
	return nil
}

// ifStatement: 'if' '(' expression ')' '{' statements '}'
// ('else' '{' statements '}')?
//
// The two label scheme is used whether or not an else branch is present: the
// negated condition jumps over the then branch to the first label, the then
// branch jumps over the else branch to the second.
func (e *engine) compileIf() error {
	if _, err := e.eat("if"); err != nil {
		return err
	}
	elseLabel := e.newLabel()
	endLabel := e.newLabel()
	if _, err := e.eat("("); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if _, err := e.eat(")"); err != nil {
		return err
	}
	e.out.Arith(vm.Not)
	e.out.IfGoto(elseLabel)
	if err := e.compileBlock(); err != nil {
		return err
	}
	e.out.Goto(endLabel)
	e.out.Label(elseLabel)
	if e.at("else") {
		if _, err := e.eat("else"); err != nil {
			return err
		}
		if err := e.compileBlock(); err != nil {
			return err
		}
	}
	e.out.Label(endLabel)
	return nil
}

// whileStatement: 'while' '(' expression ')' '{' statements '}'
func (e *engine) compileWhile() error {
	if _, err := e.eat("while"); err != nil {
		return err
	}
	top := e.newLabel()
	end := e.newLabel()
	e.out.Label(top)
	if _, err := e.eat("("); err != nil {
		return err
	}
	if err := e.compileExpression(); err != nil {
		return err
	}
	if _, err := e.eat(")"); err != nil {
		return err
	}
	e.out.Arith(vm.Not)
	e.out.IfGoto(end)
	if err := e.compileBlock(); err != nil {
		return err
	}
	e.out.Goto(top)
	e.out.Label(end)
	return nil
}

// '{' statements '}'
func (e *engine) compileBlock() error {
	if _, err := e.eat("{"); err != nil {
		return err
	}
	if err := e.compileStatements(); err != nil {
		return err
	}
	_, err := e.eat("}")
	return err
}

// doStatement: 'do' subroutineCall ';' with the unused return value dropped.
func (e *engine) compileDo() error {
	if _, err := e.eat("do"); err != nil {
		return err
	}
	head := e.tok()
	if _, err := e.eatIdent(); err != nil {
		return err
	}
	if err := e.compileCall(head); err != nil {
		return err
	}
	e.out.Pop(vm.Temp, 0)
	_, err := e.eat(";")
	return err
}

// subroutineCall, with the head identifier already consumed:
//
//	subName '(' expressionList ')'
//	(className|varName) '.' subName '(' expressionList ')'
//
// An unqualified call targets the current class with the current instance as
// implicit receiver. In the qualified form the head names either a variable,
// whose value becomes the receiver and whose declared type qualifies the
// callee, or a class.
func (e *engine) compileCall(head Token) error {
	switch {
	case e.at("."):
		if _, err := e.eat("."); err != nil {
			return err
		}
		sub, err := e.eatIdent()
		if err != nil {
			return err
		}
		callee := head.Text + "." + sub
		receiver := 0
		if v, ok := e.table.Lookup(head.Text); ok {
			e.out.Push(v.Kind.Segment(), v.Index)
			callee = v.Type + "." + sub
			receiver = 1
		}
		if _, err = e.eat("("); err != nil {
			return err
		}
		n, err := e.compileExpressionList()
		if err != nil {
			return err
		}
		if _, err = e.eat(")"); err != nil {
			return err
		}
		e.out.Call(callee, receiver+n)
	case e.at("("):
		e.out.Push(vm.Pointer, 0)
		if _, err := e.eat("("); err != nil {
			return err
		}
		n, err := e.compileExpressionList()
		if err != nil {
			return err
		}
		if _, err = e.eat(")"); err != nil {
			return err
		}
		e.out.Call(e.class+"."+head.Text, n+1)
	default:
		return e.expected(`"(" or "."`)
	}
	return nil
}

// returnStatement: 'return' expression? ';'. A void return pushes constant 0
// so that every subroutine leaves exactly one value for the caller.
func (e *engine) compileReturn() error {
	if _, err := e.eat("return"); err != nil {
		return err
	}
	if e.at(";") {
		e.out.Push(vm.Constant, 0)
	} else if err := e.compileExpression(); err != nil {
		return err
	}
	e.out.Return()
	_, err := e.eat(";")
	return err
}

var binaryOps = map[string]vm.Op{
	"+": vm.Add,
	"-": vm.Sub,
	"&": vm.And,
	"|": vm.Or,
	"<": vm.Lt,
	">": vm.Gt,
	"=": vm.Eq,
}

// expression: term (op term)*, compiled strictly left to right with no
// operator precedence. Multiplication and division lower to OS calls.
func (e *engine) compileExpression() error {
	if err := e.compileTerm(); err != nil {
		return err
	}
	for {
		t := e.tok()
		if t.Type != Symbol {
			return nil
		}
		op, ok := binaryOps[t.Text]
		if !ok && t.Text != "*" && t.Text != "/" {
			return nil
		}
		if err := e.toks.Advance(); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		switch t.Text {
		case "*":
			e.out.Call("Math.multiply", 2)
		case "/":
			e.out.Call("Math.divide", 2)
		default:
			e.out.Arith(op)
		}
	}
}

// expressionList: (expression (',' expression)*)? and its count.
func (e *engine) compileExpressionList() (int, error) {
	if e.at(")") {
		return 0, nil
	}
	n := 0
	for {
		if err := e.compileExpression(); err != nil {
			return n, err
		}
		n++
		if !e.at(",") {
			return n, nil
		}
		if _, err := e.eat(","); err != nil {
			return n, err
		}
	}
}

// term: integerConstant | stringConstant | keywordConstant | varName |
// varName '[' expression ']' | subroutineCall | '(' expression ')' |
// unaryOp term
func (e *engine) compileTerm() error {
	t := e.tok()
	switch {
	case t.Type == IntConst:
		n, err := strconv.Atoi(t.Text)
		if err != nil {
			return &Error{t.Pos, "Integer constant " + t.Text + " out of range"}
		}
		e.out.Push(vm.Constant, n)
		return e.toks.Advance()
	case t.Type == StringConst:
		e.compileString(t.Text)
		return e.toks.Advance()
	case t.Type == Keyword:
		switch t.Text {
		case "true":
			e.out.Push(vm.Constant, 0)
			e.out.Arith(vm.Not)
		case "false", "null":
			e.out.Push(vm.Constant, 0)
		case "this":
			e.out.Push(vm.Pointer, 0)
		default:
			return e.expected("term")
		}
		return e.toks.Advance()
	case e.at("("):
		if _, err := e.eat("("); err != nil {
			return err
		}
		if err := e.compileExpression(); err != nil {
			return err
		}
		_, err := e.eat(")")
		return err
	case e.at("-"):
		if _, err := e.eat("-"); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		e.out.Arith(vm.Neg)
		return nil
	case e.at("~"):
		if _, err := e.eat("~"); err != nil {
			return err
		}
		if err := e.compileTerm(); err != nil {
			return err
		}
		e.out.Arith(vm.Not)
		return nil
	case t.Type == Identifier:
		return e.compileIdentTerm()
	}
	return e.expected("term")
}

// compileIdentTerm disambiguates the four identifier introduced terms by
// peeking at the token after the identifier: indexed access, the two call
// forms, or plain variable access.
func (e *engine) compileIdentTerm() error {
	head := e.tok()
	next := e.toks.Peek()
	switch {
	case next.Type == Symbol && next.Text == "[":
		v, ok := e.table.Lookup(head.Text)
		if !ok {
			return &Error{head.Pos, "Undefined variable " + head.Text}
		}
		if err := e.toks.Advance(); err != nil {
			return err
		}
		if _, err := e.eat("["); err != nil {
			return err
		}
		e.out.Push(v.Kind.Segment(), v.Index)
		if err := e.compileExpression(); err != nil {
			return err
		}
		if _, err := e.eat("]"); err != nil {
			return err
		}
		e.out.Arith(vm.Add)
		e.out.Pop(vm.Pointer, 1)
		e.out.Push(vm.That, 0)
		return nil
	case next.Type == Symbol && (next.Text == "(" || next.Text == "."):
		if err := e.toks.Advance(); err != nil {
			return err
		}
		return e.compileCall(head)
	default:
		v, ok := e.table.Lookup(head.Text)
		if !ok {
			return &Error{head.Pos, "Undefined variable " + head.Text}
		}
		e.out.Push(v.Kind.Segment(), v.Index)
		return e.toks.Advance()
	}
}

// compileString builds a string object on the stack: String.new with the
// length, then one appendChar call per character. appendChar returns the
// string, so the object stays on top of the stack throughout.
func (e *engine) compileString(s string) {
	e.out.Push(vm.Constant, len(s))
	e.out.Call("String.new", 1)
	for i := 0; i < len(s); i++ {
		e.out.Push(vm.Constant, int(s[i]))
		e.out.Call("String.appendChar", 2)
	}
}
