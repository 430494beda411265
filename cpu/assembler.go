// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// COMMENT starts a comment that runs to the end of the line.
const COMMENT = "//"

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":  "0",
	"IO_BASE": fmt.Sprintf("%d", IO_BASE),
}

var (
	reSection    = regexp.MustCompile(`^\.(\w+)(?:\s+0[xX]([0-9a-fA-F]+))?:$`)
	reExpression = regexp.MustCompile(`\$\((?:[^$()]|\([^$()]*\))*\)`)
	reDecimal    = regexp.MustCompile(`^[0-9]+$`)
	reThinArith  = regexp.MustCompile(`^[A-H]$`)
	reThinNumber = regexp.MustCompile(`^R([0-9]|1[0-5])$`)
	reThinHalf   = regexp.MustCompile(`^([JKLP])([01])$`)
	reWide       = regexp.MustCompile(`^[JKLP]$`)
)

// Operands are the operands of one instruction, grouped by kind, each group
// in source order.
type Operands struct {
	Immediates []int64
	Thin       []ThinReg
	Wide       []WideReg
}

// Assembler is a single pass, section based assembler for the AISA system.
type Assembler struct {
	Verbose bool               // If set, verbosely logs the assembler actions.
	Log     logrus.FieldLogger // Verbose destination; the standard logger if nil.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.

	program *Program // Sections, in declaration order.
	current *Section // Section receiving assembled words.
}

// Predefine defines a new equate or redefines an existing equate, applied at
// the start of each Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() logrus.FieldLogger {
	if asm.Log == nil {
		return logrus.StandardLogger()
	}
	return asm.Log
}

// valueOf returns the value of a decimal word, or of an equate naming one.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	if !reDecimal.MatchString(word) {
		err = ErrParseNumber(word)
		return
	}

	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var v int64
		v, err = asm.valueOf(key)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
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

// commentIndex returns the start of the line's comment, or -1. A comment
// marker inside a $() expression is Starlark floor division.
func commentIndex(line string) int {
	spans := reExpression.FindAllStringIndex(line, -1)
	offset := 0
	for {
		index := strings.Index(line[offset:], COMMENT)
		if index < 0 {
			return -1
		}
		index += offset

		offset = -1
		for _, span := range spans {
			if index >= span[0] && index < span[1] {
				offset = span[1]
				break
			}
		}
		if offset < 0 {
			return index
		}
	}
}

// parseLine strips comments, evaluates $() expressions and splits the line
// into words. Commas separate words like whitespace does.
func (asm *Assembler) parseLine(text string, lineno int) (line string, words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	line = text
	if index := commentIndex(line); index >= 0 {
		line = line[:index]
	}
	line = strings.TrimSpace(line)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	return
}

// parseEquate handles .equ NAME VALUE
func (asm *Assembler) parseEquate(words []string) (err error) {
	if len(words) != 3 {
		err = ErrEquateSyntax
		return
	}
	_, ok := asm.Equate[words[1]]
	if ok {
		err = ErrEquateDuplicate
		return
	}
	value, err := asm.valueOf(words[2])
	if err != nil {
		return
	}
	asm.Equate[words[1]] = fmt.Sprintf("%d", value)
	return
}

// parseSection handles .NAME: and .NAME 0xADDRESS: headers.
func (asm *Assembler) parseSection(line string, lineno int) (err error) {
	match := reSection.FindStringSubmatch(line)
	if match == nil {
		err = ErrSectionHeader
		return
	}

	name := match[1]
	absolute := len(match[2]) != 0
	var address uint64
	if absolute {
		address, err = strconv.ParseUint(match[2], 16, 32)
		if err != nil {
			err = ErrSectionHeader
			return
		}
	}

	sec := asm.program.Section(name)
	if sec == nil {
		sec = &Section{
			Name:     name,
			LineNo:   lineno,
			Absolute: absolute,
			Address:  uint32(address),
		}
		asm.program.Sections = append(asm.program.Sections, sec)
	} else if absolute && (!sec.Absolute || sec.Address != uint32(address)) {
		err = ErrSectionRedefined
		return
	}

	asm.current = sec
	return
}

// scanOperands classifies every operand word as an immediate, a thin
// register or a wide register, and checks immediate widths.
func (asm *Assembler) scanOperands(mnemonic string, words []string) (ops Operands, err error) {
	bits := IMM_BITS
	if mnemonic == "LOADIMM" {
		bits = LOADIMM_BITS
	}

	for _, word := range words {
		switch {
		case strings.HasPrefix(word, "#"):
			var value int64
			value, err = asm.valueOf(word[1:])
			if err != nil {
				return
			}
			if value >= (1 << bits) {
				err = ErrImmediate{Value: value, Bits: bits}
				return
			}
			ops.Immediates = append(ops.Immediates, value)
		case reThinArith.MatchString(word):
			ops.Thin = append(ops.Thin, REG_A+ThinReg(word[0]-'A'))
		case reThinNumber.MatchString(word):
			n, _ := strconv.Atoi(word[1:])
			ops.Thin = append(ops.Thin, ThinReg(n))
		case reThinHalf.MatchString(word):
			wide := WideReg(strings.IndexByte("JKLP", word[0]))
			half := ThinReg(word[1] - '0')
			ops.Thin = append(ops.Thin, REG_J_LO+ThinReg(wide)*2+half)
		case reWide.MatchString(word):
			ops.Wide = append(ops.Wide, WideReg(strings.IndexByte("JKLP", word[0])))
		default:
			err = fmt.Errorf("%w '%v'", ErrOperandInvalid, word)
			return
		}
	}

	return
}

// parseWords assembles the words of an instruction line into the current
// section.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	mnemonic := strings.ToUpper(words[0])

	enc, ok := encoders[mnemonic]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	ops, err := asm.scanOperands(mnemonic, words[1:])
	if err != nil {
		return
	}

	code, err := enc.encode(mnemonic, ops)
	if err != nil {
		return
	}

	asm.current.Opcodes = append(asm.current.Opcodes, Opcode{LineNo: lineno, Words: words, Code: code})
	return
}

// Parse parses an input stream into a finalized Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			if _, ok := err.(ErrSyntax); !ok {
				err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			}
		}
	}()

	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	asm.current = &Section{Name: START_SECTION, Absolute: true}
	asm.program = &Program{Sections: []*Section{asm.current}}

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			asm.logger().Infof("%v: %v", lineno, text)
		}

		var line string
		var words []string
		line, words, err = asm.parseLine(text, lineno)
		if err != nil {
			return
		}

		switch {
		case len(words) == 0:
			// blank or comment
		case words[0] == ".equ":
			err = asm.parseEquate(words)
		case strings.HasPrefix(words[0], "."):
			err = asm.parseSection(line, lineno)
		default:
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Past the last line; finalize errors carry their own location.
	text = ""
	err = asm.program.Finalize()
	if err != nil {
		return
	}

	prog = asm.program
	return
}
