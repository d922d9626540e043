package assembler

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// macro is a recorded .macro/.endm body, expanded inline wherever its name
// is invoked as a mnemonic.
type macro struct {
	lineNo int
	args   []string
	lines  []string
}

// sourceLine is one physical line of expanded source text, tagged with the
// line number diagnostics should report (the macro invocation's line, for
// expanded bodies, not the macro definition's).
type sourceLine struct {
	no   int
	text string
}

// preprocessor expands .equ, .macro/.endm, character literals, and $(...)
// compile-time expressions into plain instruction/directive text, leaving a
// flat vector for the lexer. This mirrors the teacher's own parseLine, which
// folds the same expansions into its single assembly pass; here they run
// once, up front, so Pass1 and Pass2 both see already-expanded text.
type preprocessor struct {
	equate map[string]string
	macros map[string]*macro
}

func newPreprocessor() *preprocessor {
	return &preprocessor{
		equate: map[string]string{},
		macros: map[string]*macro{},
	}
}

var charLiteralRe = regexp.MustCompile(`'\\?[^']'`)
var exprRe = regexp.MustCompile(`\$\([^$]*\)`)
var asciizPrefixRe = regexp.MustCompile(`^(\S+:\s+)?\.asciiz\b`)
var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// expand turns raw source text into a flat vector of expanded lines.
func (p *preprocessor) expand(input io.Reader) (lines []sourceLine, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	var inMacro *macro

	for scanner.Scan() {
		lineno++
		raw := scanner.Text()

		// .asciiz payloads are exempt from comment stripping: a ';' or
		// '#' inside the quoted string is data, not a comment.
		var stripped string
		if asciizPrefixRe.MatchString(strings.TrimSpace(raw)) {
			stripped = raw
		} else {
			stripped = stripComment(raw)
		}
		trimmed := strings.TrimSpace(stripped)
		words := splitWords(trimmed)

		if len(words) > 0 && words[0] == ".macro" {
			if inMacro != nil {
				return nil, ErrSyntax{LineNo: lineno, Line: raw, Err: ErrMacroNesting}
			}
			if len(words) < 2 {
				return nil, ErrSyntax{LineNo: lineno, Line: raw, Err: ErrMacroSyntax}
			}
			name := words[1]
			if _, dup := p.macros[name]; dup {
				return nil, ErrSyntax{LineNo: lineno, Line: raw, Err: ErrMacroDuplicate}
			}
			m := &macro{lineNo: lineno + 1, args: words[2:]}
			p.macros[name] = m
			inMacro = m
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if inMacro == nil {
				return nil, ErrSyntax{LineNo: lineno, Line: raw, Err: ErrMacroLonelyEndm}
			}
			inMacro = nil
			continue
		}

		if inMacro != nil {
			inMacro.lines = append(inMacro.lines, trimmed)
			continue
		}

		expanded, expandErr := p.expandLine(trimmed, lineno)
		if expandErr != nil {
			return nil, ErrSyntax{LineNo: lineno, Line: raw, Err: expandErr}
		}
		lines = append(lines, expanded...)
	}

	if inMacro != nil {
		return nil, ErrSyntax{LineNo: lineno, Line: "", Err: ErrMacroLonely}
	}

	return lines, scanner.Err()
}

// expandLine expands equates, character literals, $(...) expressions, and a
// macro invocation (if the first word names one), returning zero or more
// fully expanded source lines.
func (p *preprocessor) expandLine(line string, lineno int) ([]sourceLine, error) {
	if line == "" {
		return nil, nil
	}

	if asciizPrefixRe.MatchString(line) {
		// The quoted payload may contain spaces; leave it untouched for
		// the lexer rather than word-splitting it here.
		return []sourceLine{{no: lineno, text: line}}, nil
	}

	words := splitWords(line)
	if len(words) == 0 {
		return nil, nil
	}

	if words[0] == ".equ" {
		if len(words) != 3 {
			return nil, ErrEquateSyntax
		}
		if _, dup := p.equate[words[1]]; dup {
			return nil, ErrEquateDuplicate
		}
		p.equate[words[1]] = words[2]
		return nil, nil
	}

	line = p.substituteCharLiterals(line)
	line, err := p.substituteExpressions(line)
	if err != nil {
		return nil, err
	}
	line = p.substituteEquates(line)

	words = splitWords(strings.ReplaceAll(line, ",", " , "))
	mnemonic := strings.TrimSuffix(words[0], ",")

	if m, ok := p.macros[mnemonic]; ok {
		args := stripCommas(words[1:])
		return p.expandMacro(mnemonic, m, args, lineno)
	}

	return []sourceLine{{no: lineno, text: line}}, nil
}

// substituteEquates replaces every whole-word occurrence of a defined
// equate name with its value, leaving punctuation like the operand-list
// commas untouched.
func (p *preprocessor) substituteEquates(line string) string {
	if len(p.equate) == 0 {
		return line
	}
	return identifierRe.ReplaceAllStringFunc(line, func(word string) string {
		if v, ok := p.equate[word]; ok {
			return v
		}
		return word
	})
}

// stripCommas removes any trailing commas split out by the "," -> " , "
// rewrite above, so macro arguments come through bare.
func stripCommas(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSuffix(w, ",")
		if w != "" && w != "," {
			out = append(out, w)
		}
	}
	return out
}

func (p *preprocessor) expandMacro(name string, m *macro, args []string, lineno int) ([]sourceLine, error) {
	if len(args) != len(m.args) {
		return nil, ErrMacroExpand{Macro: name, Line: lineno, Err: ErrMacroArgCount}
	}

	saved := make(map[string]string, len(m.args))
	hadSaved := make(map[string]bool, len(m.args))
	for i, argName := range m.args {
		saved[argName], hadSaved[argName] = p.equate[argName]
		p.equate[argName] = args[i]
	}
	defer func() {
		for _, argName := range m.args {
			if hadSaved[argName] {
				p.equate[argName] = saved[argName]
			} else {
				delete(p.equate, argName)
			}
		}
	}()

	var out []sourceLine
	for i, body := range m.lines {
		bodyLineNo := m.lineNo + i
		body = strings.ReplaceAll(body, "@", fmt.Sprintf("%s_%d_", name, bodyLineNo))
		expanded, err := p.expandLine(body, lineno)
		if err != nil {
			return nil, ErrMacroExpand{Macro: name, Line: bodyLineNo, Err: err}
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// substituteCharLiterals replaces 'c' and '\n'-style escapes with their
// decimal byte value, so the lexer only ever sees numeric literals.
func (p *preprocessor) substituteCharLiterals(line string) string {
	return charLiteralRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%d", str[0])
	})
}

// substituteExpressions evaluates every $(...) compile-time expression in
// line via starlark, against the current equates as predefined integer
// bindings. Grounded directly on the teacher's parenEval.
func (p *preprocessor) substituteExpressions(line string) (string, error) {
	var evalErr error
	out := exprRe.ReplaceAllStringFunc(line, func(expr string) string {
		value, err := p.evalExpression(expr[2 : len(expr)-1])
		if err != nil {
			evalErr = err
			return expr
		}
		return fmt.Sprintf("%d", value)
	})
	if evalErr != nil {
		return "", evalErr
	}
	return out, nil
}

func (p *preprocessor) evalExpression(expr string) (int64, error) {
	thread := &starlark.Thread{}
	opts := syntax.FileOptions{}
	predeclared := starlark.StringDict{}
	for key, val := range p.equate {
		if n, err := parseLiteralInt(val); err == nil {
			predeclared[key] = starlark.MakeInt64(n)
		}
	}

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", prog, predeclared)
	if err != nil {
		return 0, ErrExpression
	}
	rc, ok := dict["rc"]
	if !ok {
		return 0, ErrExpression
	}
	n, ok := rc.(starlark.Int)
	if !ok {
		return 0, ErrExpression
	}
	v, ok := n.Int64()
	if !ok {
		return 0, ErrExpression
	}
	return v, nil
}

// stripComment discards everything from the first ';' or '#' onward.
// .asciiz lines are exempted upstream in expand, so a quoted payload
// containing either character is preserved rather than truncated.
func stripComment(line string) string {
	cut := len(line)
	for i, r := range line {
		if r == ';' || r == '#' {
			cut = i
			break
		}
	}
	return line[:cut]
}

func splitWords(line string) []string {
	fields := strings.Fields(line)
	return fields
}
