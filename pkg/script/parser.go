// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type (
	// Script is an AST element which describes a sequence of the statements
	// separated by ';'
	Script struct {
		Statements []*Statement `@@ { ";" @@ }`
	}

	// Statement is an AST element which holds exactly one cache operation
	Statement struct {
		Put    *Put    `  @@`
		Get    *Get    `| @@`
		Erase  *Erase  `| @@`
		Resize *Resize `| @@`
		Len    bool    `| @"LEN"`
	}

	// Put stores the value by the key
	Put struct {
		Key   string `"PUT" @(Ident|String|Number)`
		Value string `@(Ident|String|Number)`
	}

	// Get requests the value by the key
	Get struct {
		Key string `"GET" @(Ident|String|Number)`
	}

	// Erase removes the value by the key
	Erase struct {
		Key string `"ERASE" @(Ident|String|Number)`
	}

	// Resize sets the new capacity of the cache
	Resize struct {
		Capacity int `"RESIZE" @Number`
	}
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{`Keyword`, `(?i)\b(PUT|GET|ERASE|RESIZE|LEN)\b`},
		{`Ident`, `[a-zA-Z_][a-zA-Z0-9_]*`},
		{`Number`, `[-+]?\d*\.?\d+([eE][-+]?\d+)?`},
		{`String`, `'[^']*'|"[^"]*"`},
		{`Operators`, `;`},
		{"whitespace", `\s+`},
	})

	parser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
	)
)

// String returns the statement in its script form
func (s Statement) String() string {
	switch {
	case s.Put != nil:
		return fmt.Sprintf("put %s %s", s.Put.Key, s.Put.Value)
	case s.Get != nil:
		return fmt.Sprintf("get %s", s.Get.Key)
	case s.Erase != nil:
		return fmt.Sprintf("erase %s", s.Erase.Key)
	case s.Resize != nil:
		return fmt.Sprintf("resize %d", s.Resize.Capacity)
	case s.Len:
		return "len"
	}
	return ""
}

// String returns the script in its source form
func (s Script) String() string {
	var sb strings.Builder
	for i, st := range s.Statements {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(st.String())
	}
	return sb.String()
}

// Parse parses the text and in case of success returns AST. The keys and the
// values are identifiers, numbers or quoted strings. The trailing ';' is
// allowed, so "put k v; get k" and "put k v; get k;" are both fine.
func Parse(text string) (*Script, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, "; \t")
	if len(text) == 0 {
		return &Script{}, nil
	}
	s, err := parser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script=%q: %w", text, err)
	}
	return s, nil
}
