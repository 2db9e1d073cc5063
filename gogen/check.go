package gogen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"codeberg.org/svext/svext/extract"
)

// localePrefix matches methods on the gotext locale type, however the
// package is imported.
const localePrefix = "(*github.com/leonelquinteros/gotext.Locale)."

// Check loads the package containing the generated file and verifies that
// every unit in the catalog appears as a gotext call there. It reports the
// units the generated file is missing, which normally means the file is
// stale and extraction needs to be re-run.
func Check(dir, genPath string, units []extract.Unit) error {
	absGen, err := filepath.Abs(genPath)
	if err != nil {
		return err
	}

	cfg := &packages.Config{
		Mode: packages.LoadAllSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return fmt.Errorf("could not load packages in %s: %w", dir, err)
	}

	found := make(map[extract.Key]struct{})

	for _, pkg := range pkgs {
		if pkg.TypesInfo == nil {
			continue
		}

		v := &callVisitor{pkg: pkg, genFile: absGen, found: found}

		for _, f := range pkg.Syntax {
			ast.Walk(v, f)
		}
	}

	var missing []string

	for _, u := range units {
		if u.Content == "" {
			continue
		}

		if _, ok := found[u.Key()]; !ok {
			missing = append(missing, strconv.Quote(u.Content))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("generated file %s is missing %d unit(s): %s",
			genPath, len(missing), strings.Join(missing, ", "))
	}

	return nil
}

// callVisitor collects gotext Get/GetN calls found in the generated file.
type callVisitor struct {
	pkg     *packages.Package
	genFile string
	found   map[extract.Key]struct{}
}

func (v *callVisitor) Visit(node ast.Node) ast.Visitor {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return v
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return v
	}

	fn, ok := v.pkg.TypesInfo.ObjectOf(sel.Sel).(*types.Func)
	if !ok {
		return v
	}

	if !strings.HasPrefix(fn.FullName(), localePrefix) {
		return v
	}

	pos := v.pkg.Fset.Position(call.Lparen)
	if pos.Filename != v.genFile {
		return v
	}

	switch sel.Sel.Name {
	case "Get":
		if s, ok := stringArg(call, 0); ok {
			v.found[extract.Key{Kind: extract.Simple, Content: s}] = struct{}{}
		}
	case "GetN":
		s, ok1 := stringArg(call, 0)

		p, ok2 := stringArg(call, 1)
		if ok1 && ok2 {
			v.found[extract.Key{Kind: extract.PluralPair, Content: s, PluralContent: p}] = struct{}{}
		}
	}

	return v
}

func stringArg(call *ast.CallExpr, i int) (string, bool) {
	if i >= len(call.Args) {
		return "", false
	}

	basic, ok := call.Args[i].(*ast.BasicLit)
	if !ok || basic.Kind != token.STRING {
		return "", false
	}

	s, err := strconv.Unquote(basic.Value)
	if err != nil {
		return "", false
	}

	return s, true
}
