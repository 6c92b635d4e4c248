// Package compiler wires the lexer (via internal/parser), parser,
// resolver, and - when requested - the lowering contract into a single
// compile of one module.
package compiler

import (
	"fmt"

	"github.com/vexlang/vexc/internal/abitrace"
	"github.com/vexlang/vexc/internal/config"
	"github.com/vexlang/vexc/internal/irdump"
	"github.com/vexlang/vexc/internal/lowering"
	"github.com/vexlang/vexc/internal/parser"
	"github.com/vexlang/vexc/internal/resolved"
	"github.com/vexlang/vexc/internal/resolver"
)

// Result holds everything a single compile produced.
type Result struct {
	Module *resolved.Module
	// Trace is the ABI-call trace internal/abitrace recorded while
	// lowering Module, populated only when cfg.Trace was set.
	Trace string
}

// Compile runs src (named name, for diagnostics) through the parser and
// resolver, and through the lowering contract onto a reference ABI trace
// when cfg.Trace is set.
func Compile(name, src string, cfg *config.Config) (*Result, error) {
	mod, err := parser.Parse(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	predefined := cfg.PredefinedFunctions
	if len(predefined) == 0 {
		predefined = resolver.DefaultPredefinedFunctions()
	}

	rmod, err := resolver.Resolve(mod, predefined)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	result := &Result{Module: rmod}
	if cfg.Trace {
		tr := abitrace.New()
		if err := lowering.Lower(rmod, tr); err != nil {
			return nil, fmt.Errorf("lower: %w", err)
		}
		result.Trace = tr.String()
	}
	return result, nil
}

// Emit renders result according to cfg.Emit.
func Emit(result *Result, cfg *config.Config) (string, error) {
	switch cfg.Emit {
	case config.EmitTrace:
		if result.Trace == "" {
			return "", fmt.Errorf("compiler: emit format %q requires trace to be enabled", cfg.Emit)
		}
		return result.Trace, nil
	case config.EmitResolvedIR, "":
		return irdump.Dump(result.Module)
	default:
		return "", fmt.Errorf("compiler: unknown emit format %q", cfg.Emit)
	}
}
