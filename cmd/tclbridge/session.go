package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/feather-lang/tclbridge"
	"github.com/feather-lang/tclbridge/interp"
)

var (
	keyColor = color.New(color.FgCyan)
	errColor = color.New(color.FgRed)
)

// session holds the named values of one REPL run.
type session struct {
	ip     *interp.Interp
	values map[string]*tclbridge.Value
	out    io.Writer
	log    *zap.Logger
}

func newSession(ip *interp.Interp, out io.Writer, log *zap.Logger) *session {
	return &session{
		ip:     ip,
		values: make(map[string]*tclbridge.Value),
		out:    out,
		log:    log,
	}
}

// close releases every named value and the interpreter.
func (s *session) close() {
	for name, v := range s.values {
		v.Release()
		delete(s.values, name)
	}
	s.ip.Close()
}

// command is one REPL command. max < 0 means no upper bound on arguments.
type command struct {
	usage    string
	help     string
	min, max int
	run      func(s *session, args []*tclbridge.Value) (quit bool, err error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"list":    {"NAME ?ITEM ...?", "create or replace a list", 1, -1, (*session).cmdList},
		"append":  {"NAME ITEM ?ITEM ...?", "append items to a list", 2, -1, (*session).cmdAppend},
		"len":     {"NAME", "print the list length", 1, 1, (*session).cmdLen},
		"index":   {"NAME I", "print one element; negative I counts from the end", 2, 2, (*session).cmdIndex},
		"range":   {"NAME LO HI", "print elements LO..HI inclusive, clamped", 3, 3, (*session).cmdRange},
		"splice":  {"NAME LO HI ?ITEM ...?", "replace elements LO..HI with items", 3, -1, (*session).cmdSplice},
		"insert":  {"NAME I ITEM ?ITEM ...?", "insert items before index I", 3, -1, (*session).cmdInsert},
		"show":    {"NAME", "print a value", 1, 1, (*session).cmdShow},
		"drop":    {"NAME", "release a value", 1, 1, (*session).cmdDrop},
		"aset":    {"ARRAY KEY VALUE", "set an array element", 3, 3, (*session).cmdAset},
		"aget":    {"ARRAY ?KEY?", "print one element or the whole array", 1, 2, (*session).cmdAget},
		"anames":  {"ARRAY", "print element names", 1, 1, (*session).cmdAnames},
		"aunset":  {"ARRAY KEY", "unset an array element", 2, 2, (*session).cmdAunset},
		"aimport": {"ARRAY NAME", "import a key/value list value into an array", 2, 2, (*session).cmdAimport},
		"stats":   {"", "print value and cell counts", 0, 0, (*session).cmdStats},
		"help":    {"", "list commands", 0, 0, (*session).cmdHelp},
		"quit":    {"", "leave the repl", 0, 0, (*session).cmdQuit},
	}
}

// exec runs one line. The line is split into words with TCL list syntax,
// so braces and quotes group words.
func (s *session) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	s.ip.ResetResult()

	cmdline := tclbridge.FromScalar(s.ip, line)
	defer cmdline.Release()
	words, err := cmdline.Elements()
	if err != nil {
		return false, err
	}
	defer func() {
		for _, w := range words {
			w.Release()
		}
	}()

	name := words[0].String()
	if name == "exit" {
		name = "quit"
	}
	c, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("invalid command name %q", name)
	}
	args := words[1:]
	if len(args) < c.min || (c.max >= 0 && len(args) > c.max) {
		return false, fmt.Errorf("wrong # args: should be %q", strings.TrimSpace(name+" "+c.usage))
	}
	return c.run(s, args)
}

// printError reports a failed command.
func (s *session) printError(err error) {
	errColor.Fprintf(s.out, "error: %v\n", err)
	if info := s.ip.ErrorInfo(); info != "" {
		s.log.Debug("command failed", zap.String("errorInfo", info))
	}
}

func (s *session) value(name string) (*tclbridge.Value, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("no value named %q", name)
	}
	return v, nil
}

func (s *session) store(name string, v *tclbridge.Value) {
	if old, ok := s.values[name]; ok {
		old.Release()
	}
	s.values[name] = v
}

func (s *session) intArg(v *tclbridge.Value, name string) (int, error) {
	return tclbridge.ConvertArg[int](s.ip, v.Handle(), name)
}

func strs(vs []*tclbridge.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// printList prints xs in TCL list form.
func (s *session) printList(xs []string) {
	v := tclbridge.FromSlice(s.ip, xs)
	defer v.Release()
	fmt.Fprintln(s.out, v.String())
}

func (s *session) cmdList(args []*tclbridge.Value) (bool, error) {
	v := tclbridge.NewValue(s.ip)
	if err := v.Insert(0, args[1:]); err != nil {
		v.Release()
		return false, err
	}
	s.store(args[0].String(), v)
	fmt.Fprintln(s.out, v.String())
	return false, nil
}

func (s *session) cmdAppend(args []*tclbridge.Value) (bool, error) {
	name := args[0].String()
	v, ok := s.values[name]
	if !ok {
		v = tclbridge.NewValue(s.ip)
		s.values[name] = v
	}
	if err := tclbridge.AppendAll(v, strs(args[1:])); err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, v.String())
	return false, nil
}

func (s *session) cmdLen(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	n, err := v.Len()
	if err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, n)
	return false, nil
}

func (s *session) cmdIndex(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	i, err := s.intArg(args[1], "index")
	if err != nil {
		return false, err
	}
	e, err := v.Index(i)
	if err != nil {
		return false, err
	}
	defer e.Release()
	fmt.Fprintln(s.out, e.String())
	return false, nil
}

func (s *session) cmdRange(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	lo, err := s.intArg(args[1], "lo")
	if err != nil {
		return false, err
	}
	hi, err := s.intArg(args[2], "hi")
	if err != nil {
		return false, err
	}
	xs, err := tclbridge.RangeAs[string](v, lo, hi)
	if err != nil {
		return false, err
	}
	s.printList(xs)
	return false, nil
}

func (s *session) cmdSplice(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	lo, err := s.intArg(args[1], "lo")
	if err != nil {
		return false, err
	}
	hi, err := s.intArg(args[2], "hi")
	if err != nil {
		return false, err
	}
	if err := tclbridge.SpliceAs(v, lo, hi, strs(args[3:])); err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, v.String())
	return false, nil
}

func (s *session) cmdInsert(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	i, err := s.intArg(args[1], "index")
	if err != nil {
		return false, err
	}
	if err := tclbridge.InsertAs(v, i, strs(args[2:])); err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, v.String())
	return false, nil
}

func (s *session) cmdShow(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[0].String())
	if err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, v.String())
	return false, nil
}

func (s *session) cmdDrop(args []*tclbridge.Value) (bool, error) {
	name := args[0].String()
	v, err := s.value(name)
	if err != nil {
		return false, err
	}
	v.Release()
	delete(s.values, name)
	return false, nil
}

func (s *session) cmdAset(args []*tclbridge.Value) (bool, error) {
	arr := tclbridge.NewArray(s.ip, args[0].String())
	return false, arr.Set(args[1].String(), args[2])
}

func (s *session) cmdAget(args []*tclbridge.Value) (bool, error) {
	arr := tclbridge.NewArray(s.ip, args[0].String())
	if len(args) == 2 {
		x, err := tclbridge.GetAs[string](arr, args[1].String())
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, x)
		return false, nil
	}
	elems, err := arr.Strings()
	if err != nil {
		return false, err
	}
	for _, k := range slices.Sorted(maps.Keys(elems)) {
		keyColor.Fprint(s.out, k)
		fmt.Fprintf(s.out, " = %s\n", elems[k])
	}
	return false, nil
}

func (s *session) cmdAnames(args []*tclbridge.Value) (bool, error) {
	names, err := tclbridge.NewArray(s.ip, args[0].String()).Names()
	if err != nil {
		return false, err
	}
	s.printList(names)
	return false, nil
}

func (s *session) cmdAunset(args []*tclbridge.Value) (bool, error) {
	return false, tclbridge.NewArray(s.ip, args[0].String()).Unset(args[1].String())
}

func (s *session) cmdAimport(args []*tclbridge.Value) (bool, error) {
	v, err := s.value(args[1].String())
	if err != nil {
		return false, err
	}
	return false, tclbridge.NewArray(s.ip, args[0].String()).ImportList(v)
}

func (s *session) cmdStats([]*tclbridge.Value) (bool, error) {
	fmt.Fprintf(s.out, "values %d, cells %d\n", len(s.values), s.ip.Live())
	return false, nil
}

func (s *session) cmdHelp([]*tclbridge.Value) (bool, error) {
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		c := commands[name]
		keyColor.Fprintf(s.out, "%-8s", name)
		fmt.Fprintf(s.out, " %-24s %s\n", c.usage, c.help)
	}
	return false, nil
}

func (s *session) cmdQuit([]*tclbridge.Value) (bool, error) {
	return true, nil
}
