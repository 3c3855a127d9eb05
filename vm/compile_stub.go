package vm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/koto-lang/koto/value"
)

// Chunk is a compiled, runnable unit of script source. Parsing and
// bytecode generation are explicitly out of this module's scope; Chunk
// exists so that CompileAndRun has something concrete to
// hand the Vm, and is implemented here by a minimal expression-only
// compiler (below) sufficient to exercise the runtime end-to-end:
// literals, identifiers, calls, `.`-method chains, and binary operators.
// A host embedding a real Koto parser/bytecode emitter would replace
// Compile with one producing a Chunk backed by actual bytecode.
type Chunk interface {
	Run(vm *Vm) (value.Value, error)
}

// exprChunk adapts a parsed expression list to Chunk: each top-level
// expression is evaluated in turn and the last one's value is returned,
// matching a REPL's "value of the last statement" convention.
type exprChunk struct {
	exprs []expr
}

func (c *exprChunk) Run(vm *Vm) (value.Value, error) {
	var result value.Value = value.NullValue
	for _, e := range c.exprs {
		v, err := e.eval(vm)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// CompileAndRun parses source and runs it against vm, returning the value
// of its last top-level expression.
func CompileAndRun(vm *Vm, source string) (value.Value, error) {
	chunk, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return chunk.Run(vm)
}

// Compile parses source into a runnable Chunk.
func Compile(source string) (Chunk, error) {
	p := &parser{toks: tokenize(source)}
	var exprs []expr
	for !p.at(tokEOF) {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		for p.at(tokNewline) {
			p.next()
		}
	}
	return &exprChunk{exprs: exprs}, nil
}

// --- expression AST -------------------------------------------------

type expr interface {
	eval(vm *Vm) (value.Value, error)
}

type literalExpr struct{ v value.Value }

func (e literalExpr) eval(*Vm) (value.Value, error) { return e.v, nil }

type identExpr struct{ name string }

func (e identExpr) eval(vm *Vm) (value.Value, error) {
	if v, ok := vm.globals.Get(value.NewStr(e.name)); ok {
		return v, nil
	}
	return nil, NewRuntimeError("'%s' is not defined", e.name)
}

type binaryExpr struct {
	op       string
	lhs, rhs expr
}

func (e binaryExpr) eval(vm *Vm) (value.Value, error) {
	l, err := e.lhs.eval(vm)
	if err != nil {
		return nil, err
	}
	r, err := e.rhs.eval(vm)
	if err != nil {
		return nil, err
	}
	switch e.op {
	case "+":
		return addValues(l, r)
	case "-":
		return subValues(l, r)
	case "*":
		ln, lok := l.(value.Number)
		rn, rok := r.(value.Number)
		if !lok || !rok {
			return nil, NewRuntimeError("unable to multiply '%s' and '%s'", value.TypeName(l), value.TypeName(r))
		}
		return ln.Mul(rn), nil
	case "<":
		return compareValues(l, r, func(c int) bool { return c < 0 })
	case ">":
		return compareValues(l, r, func(c int) bool { return c > 0 })
	case "==":
		return value.Bool(equalValues(l, r)), nil
	case "!=":
		return value.Bool(!equalValues(l, r)), nil
	default:
		return nil, NewRuntimeError("unsupported operator '%s'", e.op)
	}
}

func addValues(l, r value.Value) (value.Value, error) {
	if ln, ok := l.(value.Number); ok {
		if rn, ok := r.(value.Number); ok {
			return ln.Add(rn), nil
		}
	}
	if ls, ok := l.(value.Str); ok {
		if rs, ok := r.(value.Str); ok {
			return value.NewStr(ls.Go() + rs.Go()), nil
		}
	}
	return nil, NewRuntimeError("unable to add '%s' and '%s'", value.TypeName(l), value.TypeName(r))
}

func subValues(l, r value.Value) (value.Value, error) {
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if !lok || !rok {
		return nil, NewRuntimeError("unable to subtract '%s' and '%s'", value.TypeName(l), value.TypeName(r))
	}
	if ln.IsFloat() || rn.IsFloat() {
		return value.Float(ln.AsF64() - rn.AsF64()), nil
	}
	return value.Int(ln.AsI64() - rn.AsI64()), nil
}

func compareValues(l, r value.Value, pred func(int) bool) (value.Value, error) {
	ln, lok := l.(value.Number)
	rn, rok := r.(value.Number)
	if lok && rok {
		switch {
		case ln.Less(rn):
			return value.Bool(pred(-1)), nil
		case rn.Less(ln):
			return value.Bool(pred(1)), nil
		default:
			return value.Bool(pred(0)), nil
		}
	}
	ls, lok := l.(value.Str)
	rs, rok := r.(value.Str)
	if lok && rok {
		return value.Bool(pred(strings.Compare(ls.Go(), rs.Go()))), nil
	}
	return nil, NewRuntimeError("unable to compare '%s' and '%s'", value.TypeName(l), value.TypeName(r))
}

func equalValues(l, r value.Value) bool {
	if ln, ok := l.(value.Number); ok {
		if rn, ok := r.(value.Number); ok {
			return ln.AsF64() == rn.AsF64()
		}
	}
	if ls, ok := l.(value.Str); ok {
		if rs, ok := r.(value.Str); ok {
			return ls.Go() == rs.Go()
		}
	}
	return l == r
}

// listExpr evaluates a `[e1, e2, ...]` literal, accumulating elements in a
// SequenceBuilder before handing the finished slice to a *value.List.
type listExpr struct{ elems []expr }

func (e listExpr) eval(vm *Vm) (value.Value, error) {
	sb := &value.SequenceBuilder{}
	for _, el := range e.elems {
		v, err := el.eval(vm)
		if err != nil {
			return nil, err
		}
		sb.Values = append(sb.Values, v)
	}
	return value.NewList(sb.Values), nil
}

// tupleExpr evaluates a `(e1, e2, ...)` literal the same way listExpr does,
// finishing as a value.Tuple instead of a *value.List.
type tupleExpr struct{ elems []expr }

func (e tupleExpr) eval(vm *Vm) (value.Value, error) {
	sb := &value.SequenceBuilder{}
	for _, el := range e.elems {
		v, err := el.eval(vm)
		if err != nil {
			return nil, err
		}
		sb.Values = append(sb.Values, v)
	}
	return value.Tuple(sb.Values), nil
}

// stringPart is one piece of an interpolated string literal: either a raw
// text fragment or an embedded `${...}` expression.
type stringPart struct {
	lit string
	e   expr
}

// interpStringExpr evaluates an interpolated string literal, accumulating
// its fragments in a StringBuilder.
type interpStringExpr struct{ parts []stringPart }

func (e interpStringExpr) eval(vm *Vm) (value.Value, error) {
	sb := &value.StringBuilder{}
	for _, part := range e.parts {
		if part.e == nil {
			sb.Buf = append(sb.Buf, part.lit...)
			continue
		}
		v, err := part.e.eval(vm)
		if err != nil {
			return nil, err
		}
		sb.Buf = append(sb.Buf, v.String()...)
	}
	return value.NewStr(string(sb.Buf)), nil
}

// parseStringLiteral splits raw string-token text on `${...}` markers,
// recursively parsing each embedded expression with its own tokenizer
// pass. A literal with no interpolation markers stays a plain literalExpr.
func parseStringLiteral(raw string) (expr, error) {
	if !strings.Contains(raw, "${") {
		return literalExpr{value.NewStr(raw)}, nil
	}

	var parts []stringPart
	i := 0
	for i < len(raw) {
		idx := strings.Index(raw[i:], "${")
		if idx == -1 {
			parts = append(parts, stringPart{lit: raw[i:]})
			break
		}
		if idx > 0 {
			parts = append(parts, stringPart{lit: raw[i : i+idx]})
		}
		start := i + idx + 2
		depth := 1
		j := start
		for j < len(raw) && depth > 0 {
			switch raw[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		if depth != 0 {
			return nil, fmt.Errorf("unterminated '${' in string literal")
		}
		sub := &parser{toks: tokenize(raw[start:j])}
		e, err := sub.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if !sub.at(tokEOF) {
			return nil, sub.errorf("unexpected trailing tokens in string interpolation")
		}
		parts = append(parts, stringPart{e: e})
		i = j + 1
	}
	return interpStringExpr{parts: parts}, nil
}

type callExpr struct {
	callee expr
	args   []expr
}

func (e callExpr) eval(vm *Vm) (value.Value, error) {
	f, err := e.callee.eval(vm)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.args))
	for i, a := range e.args {
		v, err := a.eval(vm)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if g, ok := f.(*value.Generator); ok {
		return vm.CallGenerator(g, args), nil
	}
	return vm.call(f, args)
}

// memberExpr resolves `receiver.name` to a Map's entry (e.g. `iterator.all`,
// where `iterator` is a namespace map). Any other receiver, or a missing
// entry, is an error; the call form `x.all(...)` on a non-Map value is
// handled by methodCallExpr.
type memberExpr struct {
	receiver expr
	name     string
}

func (e memberExpr) eval(vm *Vm) (value.Value, error) {
	recv, err := e.receiver.eval(vm)
	if err != nil {
		return nil, err
	}
	if m, ok := recv.(*value.Map); ok {
		if v, ok := m.Get(value.NewStr(e.name)); ok {
			return v, nil
		}
	}
	return nil, NewRuntimeError("'%s' has no member '%s'", value.TypeName(recv), e.name)
}

// methodCallExpr evaluates `receiver.name(args...)`. If the receiver is a
// Map holding `name`, that entry is called with args alone (so
// `iterator.chunks(x, 2)` calls the namespace entry). Otherwise the
// receiver is bound as the first call argument, the way a Koto instance
// function is called, and `name` is looked up in the library namespace in
// globals chosen by namespaceFor: "string" for a String, "num4" for a
// Num4, "iterator" for every other value.
type methodCallExpr struct {
	receiver expr
	name     string
	args     []expr
}

func (e methodCallExpr) eval(vm *Vm) (value.Value, error) {
	recv, err := e.receiver.eval(vm)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(e.args)+1)
	args = append(args, recv)
	for _, a := range e.args {
		v, err := a.eval(vm)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if m, isMap := recv.(*value.Map); isMap {
		if f, ok := m.Get(value.NewStr(e.name)); ok {
			return vm.call(f, args[1:])
		}
	}

	ns := namespaceFor(recv)
	nsMap, ok := vm.globals.Get(value.NewStr(ns))
	if !ok {
		return nil, NewRuntimeError("'%s' has no member '%s'", value.TypeName(recv), e.name)
	}
	fnMap, ok := nsMap.(*value.Map)
	if !ok {
		return nil, NewRuntimeError("'%s' has no member '%s'", value.TypeName(recv), e.name)
	}
	f, ok := fnMap.Get(value.NewStr(e.name))
	if !ok {
		return nil, NewRuntimeError("'%s' has no member '%s'", ns, e.name)
	}
	if g, ok := f.(*value.Generator); ok {
		return vm.CallGenerator(g, args), nil
	}
	return vm.call(f, args)
}

func namespaceFor(v value.Value) string {
	switch v.(type) {
	case value.Str:
		return "string"
	case value.Num4:
		return "num4"
	default:
		return "iterator"
	}
}

// --- tokenizer --------------------------------------------------------

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokString
	tokIdent
	tokSymbol
	tokNewline
)

type token struct {
	kind tokKind
	text string
}

func tokenize(src string) []token {
	var toks []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\n':
			toks = append(toks, token{tokNewline, "\n"})
			i++
		case unicode.IsSpace(r):
			i++
		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, string(runes[start:i])})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{tokIdent, string(runes[start:i])})
		case r == '\'' || r == '"':
			quote := r
			i++
			start := i
			for i < len(runes) && runes[i] != quote {
				i++
			}
			toks = append(toks, token{tokString, string(runes[start:i])})
			i++ // closing quote
		case r == '=' && i+1 < len(runes) && runes[i+1] == '=':
			toks = append(toks, token{tokSymbol, "=="})
			i += 2
		case r == '!' && i+1 < len(runes) && runes[i+1] == '=':
			toks = append(toks, token{tokSymbol, "!="})
			i += 2
		case strings.ContainsRune("+-*/<>(),.[]", r):
			toks = append(toks, token{tokSymbol, string(r)})
			i++
		default:
			// Unrecognized byte: skip it rather than failing the whole
			// chunk, since the full grammar is out of scope.
			_, size := utf8.DecodeRuneInString(string(runes[i:]))
			if size == 0 {
				size = 1
			}
			i++
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks
}

// --- parser -------------------------------------------------------------

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) at(k tokKind) bool { return p.cur().kind == k }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// errorf builds a CompileError carrying the current token position.
func (p *parser) errorf(format string, args ...interface{}) error {
	return &CompileError{Message: fmt.Sprintf(format, args...), Pos: p.pos}
}

var binPrec = map[string]int{"<": 1, ">": 1, "==": 1, "!=": 1, "+": 2, "-": 2, "*": 3, "/": 3}

func (p *parser) parseExpr(minPrec int) (expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.at(tokSymbol) {
		op := p.cur().text
		prec, isBin := binPrec[op]
		if !isBin || prec < minPrec {
			break
		}
		p.next()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, lhs: left, rhs: right}
	}
	return left, nil
}

func (p *parser) parsePostfix() (expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(tokSymbol) && p.cur().text == ".":
			p.next()
			if !p.at(tokIdent) {
				return nil, p.errorf("expected a name after '.'")
			}
			name := p.next().text
			if p.at(tokSymbol) && p.cur().text == "(" {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				e = methodCallExpr{receiver: e, name: name, args: args}
			} else {
				e = memberExpr{receiver: e, name: name}
			}
		case p.at(tokSymbol) && p.cur().text == "(":
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			e = callExpr{callee: e, args: args}
		default:
			return e, nil
		}
	}
}

func (p *parser) parseArgs() ([]expr, error) {
	p.next() // "("
	var args []expr
	for !(p.at(tokSymbol) && p.cur().text == ")") {
		a, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.at(tokSymbol) && p.cur().text == "," {
			p.next()
			continue
		}
		break
	}
	if !(p.at(tokSymbol) && p.cur().text == ")") {
		return nil, p.errorf("expected ')'")
	}
	p.next()
	return args, nil
}

func (p *parser) parsePrimary() (expr, error) {
	t := p.cur()
	switch t.kind {
	case tokNumber:
		p.next()
		if strings.Contains(t.text, ".") {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return nil, err
			}
			return literalExpr{value.Float(f)}, nil
		}
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, err
		}
		return literalExpr{value.Int(n)}, nil
	case tokString:
		p.next()
		return parseStringLiteral(t.text)
	case tokIdent:
		p.next()
		switch t.text {
		case "true":
			return literalExpr{value.Bool(true)}, nil
		case "false":
			return literalExpr{value.Bool(false)}, nil
		case "null":
			return literalExpr{value.NullValue}, nil
		default:
			return identExpr{name: t.text}, nil
		}
	case tokSymbol:
		if t.text == "(" {
			return p.parseParenOrTuple()
		}
		if t.text == "[" {
			return p.parseListLiteral()
		}
	}
	return nil, p.errorf("unexpected token %q", t.text)
}

// parseParenOrTuple handles both a parenthesized grouping expression and a
// tuple literal: `(e)` is grouping, `(e,)` and `(e1, e2, ...)` are tuples,
// and `()` is the empty tuple.
func (p *parser) parseParenOrTuple() (expr, error) {
	p.next() // "("
	if p.at(tokSymbol) && p.cur().text == ")" {
		p.next()
		return tupleExpr{}, nil
	}
	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if !(p.at(tokSymbol) && p.cur().text == ",") {
		if !(p.at(tokSymbol) && p.cur().text == ")") {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return first, nil
	}
	elems := []expr{first}
	for p.at(tokSymbol) && p.cur().text == "," {
		p.next()
		if p.at(tokSymbol) && p.cur().text == ")" {
			break
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if !(p.at(tokSymbol) && p.cur().text == ")") {
		return nil, p.errorf("expected ')'")
	}
	p.next()
	return tupleExpr{elems: elems}, nil
}

// parseListLiteral parses a `[e1, e2, ...]` literal.
func (p *parser) parseListLiteral() (expr, error) {
	p.next() // "["
	var elems []expr
	for !(p.at(tokSymbol) && p.cur().text == "]") {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(tokSymbol) && p.cur().text == "," {
			p.next()
			continue
		}
		break
	}
	if !(p.at(tokSymbol) && p.cur().text == "]") {
		return nil, p.errorf("expected ']'")
	}
	p.next()
	return listExpr{elems: elems}, nil
}
