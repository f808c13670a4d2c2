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

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/db47h/jackc/jack"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const srcExt = ".jack"

type jobCount int

func (j *jobCount) String() string { return strconv.Itoa(int(*j)) }
func (j *jobCount) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrap(err, "integer conversion failed")
	}
	if n < 1 {
		return errors.Errorf("invalid job count %d", n)
	}
	*j = jobCount(n)
	return nil
}
func (j *jobCount) Get() interface{} { return int(*j) }

var (
	debug bool
	quiet bool
	jobs  = jobCount(1)
)

// collectFiles expands the path argument into the list of source files to
// compile: the file itself, or every source file directly inside a directory.
func collectFiles(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot stat %s", root)
	}
	if !fi.IsDir() {
		if filepath.Ext(root) != srcExt {
			return nil, errors.Errorf("%s is not a %s file", root, srcExt)
		}
		return []string{root}, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read directory %s", root)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == srcExt {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no %s files in %s", srcExt, root)
	}
	return files, nil
}

// compileFile compiles path to the sibling .vm file. On a compile error the
// output file is left behind, truncated at the point of failure.
func compileFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer in.Close()
	outPath := strings.TrimSuffix(path, srcExt) + ".vm"
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", outPath)
	}
	w := bufio.NewWriter(out)
	if err = jack.Compile(path, in, w); err != nil {
		w.Flush()
		out.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		out.Close()
		return errors.Wrapf(err, "writing %s", outPath)
	}
	return errors.Wrapf(out.Close(), "writing %s", outPath)
}

func atExit(err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&quiet, "q", false, "do not report progress")
	flag.Var(&jobs, "jobs", "number of files compiled concurrently")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file%s|directory\n", filepath.Base(os.Args[0]), srcExt)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	files, err := collectFiles(flag.Arg(0))
	atExit(err)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(int(jobs))
	for _, f := range files {
		f := f
		g.Go(func() error {
			// skip remaining files once one has failed
			if ctx.Err() != nil {
				return nil
			}
			if !quiet {
				fmt.Printf("compiling %s\n", f)
			}
			return compileFile(f)
		})
	}
	atExit(g.Wait())
}
