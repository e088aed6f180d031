// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command cmlfmt parses and type-checks one or more CML source files,
// printing every parse/check diagnostic it finds and, on success, a
// one-line "ok" summary with the count of the module's public functions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/collomatique/cml/cml"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: cmlfmt <file.cml>...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if !checkFile(path) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func checkFile(path string) bool {
	glog.V(1).Infof("cmlfmt: reading %s", path)
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	mod, errs := cml.CompileModule(path, string(content))
	if !errs.Empty() {
		fmt.Fprint(os.Stderr, errs.String())
		fmt.Fprintln(os.Stderr)
		return false
	}

	names := make([]string, 0, len(mod.Checked.Funcs))
	for _, fn := range mod.AST.Functions {
		if fn.Pub {
			names = append(names, fn.Name)
		}
	}
	fmt.Printf("%s: ok, %d public function(s)\n", path, len(names))
	for _, name := range names {
		glog.V(1).Infof("cmlfmt: %s: pub let %s", path, name)
	}
	return true
}
