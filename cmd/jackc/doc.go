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

// The jackc command line tool compiles Jack source code to VM code using the
// package github.com/db47h/jackc/jack.
//
// It takes a single argument, either a .jack file or a directory, and writes
// a .vm file next to every source file compiled:
//
//	jackc Main.jack      compiles Main.jack to Main.vm
//	jackc project/       compiles every .jack file in project/
//
// Usage:
//
//	-debug
//		  enable debug diagnostics
//	-jobs value
//		  number of files compiled concurrently (default 1)
//	-q    do not report progress
//
// The exit status is 0 when every file compiled, non zero otherwise. The
// first failing file stops the run; its partial .vm output is left behind,
// truncated at the point of failure.
package main
