package asm

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// parenEval does compile-time $(...) evaluations. Every symbol is
// predeclared, both as spelled and in lower case.
func (asm *Assembler) parenEval(expr string, symbols symbolTable, lineno int) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, sym := range symbols {
		pred[key] = starlark.MakeInt64(sym.Value)
		pred[sym.Name] = starlark.MakeInt64(sym.Value)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}
