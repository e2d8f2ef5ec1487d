// Package fsext holds filesystem helpers shared by the CLI.
package fsext

import (
	"os"
	"strings"

	"github.com/yumosx/lazy/internal/env"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Expand is a wrapper around [expand.Literal]. It expands shell symbols
// such as '~' and resolves variables from e. A nil e reads the process
// environment.
func Expand(e env.Env, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if e == nil {
		e = env.New()
	}
	p := syntax.NewParser()
	word, err := p.Document(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	cfg := &expand.Config{
		Env:      expand.FuncEnviron(e.Get),
		ReadDir2: os.ReadDir,
	}
	return expand.Literal(cfg, word)
}
