package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/swf"
	"github.com/npillmayer/swf/swfquery"
	"github.com/npillmayer/swf/swftag"
	"github.com/pterm/pterm"
)

// tracer traces with key 'swf.cli'
func tracer() tracing.Trace {
	return tracing.Select("swf.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.swf.cli":   "Info",
		"trace.swf.tags":  "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	moviename := flag.String("movie", "", "SWF movie to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to SWF CLI")   // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("swf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load movie to inspect
	if err := intp.loadMovie(*moviename); err != nil { // movie name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	movie  *swftag.Movie
	name   string
	dict   map[uint16]swftag.Definition
	repl   *readline.Instance
	sprite *swftag.DefineSprite // current timeline, nil for the main timeline
}

func (intp *Intp) String() string {
	if intp == nil || intp.movie == nil {
		return "()"
	}
	if intp.sprite == nil {
		return fmt.Sprintf("( movie=%s )", intp.name)
	}
	return fmt.Sprintf("( movie=%s ) -> sprite #%d", intp.name, intp.sprite.ID)
}

// timeline returns the tags of the current timeline.
func (intp *Intp) timeline() []swftag.Tag {
	if intp.sprite != nil {
		return intp.sprite.Tags
	}
	return intp.movie.Tags
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	INFO
	TAGS
	SPRITE
	SHAPE
	STYLES
	TEXT
)

var opMap = map[string]int{
	"quit":   QUIT,
	"help":   HELP,
	"info":   INFO,
	"tags":   TAGS,
	"sprite": SPRITE,
	"shape":  SHAPE,
	"styles": STYLES,
	"text":   TEXT,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"tags",
	"sprite",
	"shape",
	"styles",
	"text",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many commands in one line: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":") // e.g.  "shape:12:svg" or "sprite:3" or "help:styles" or "tags"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		command.op[i].arg = ""
		if command.op[i].code == QUIT {
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[command.op[i].code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	HELP:   helpOp,
	INFO:   infoOp,
	TAGS:   tagsOp,
	SPRITE: spriteOp,
	SHAPE:  shapeOp,
	STYLES: stylesOp,
	TEXT:   textOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Movie Loading ----------------------------------------------------

func (intp *Intp) loadMovie(path string) error {
	if path == "" {
		return errors.New("no movie given, use flag -movie")
	}
	m, err := swf.LoadMovie(path)
	if err != nil {
		tracer().Errorf("cannot load movie %s: %s", path, err)
		return err
	}
	intp.movie, intp.name = m, path
	intp.dict = swfquery.Dictionary(m)
	pterm.Printf("%s: %d tags, %d characters\n", swfquery.MovieType(m), len(m.Tags), len(intp.dict))
	if n := len(m.Errors()); n > 0 {
		pterm.Warning.Printf("%d tag(s) failed to decode, see 'info'\n", n)
	}
	return nil
}

// ----------------------------------------------------------------------

var ErrNoMovie = errors.New("no movie loaded")
var ErrNoCharacter = errors.New("no character with this ID")

func (intp *Intp) checkMovie() error {
	if intp.movie == nil {
		return ErrNoMovie
	}
	return nil
}

// character looks up a definition by the ID given as op's argument.
func (intp *Intp) character(op *Op) (swftag.Definition, error) {
	if err := intp.checkMovie(); err != nil {
		return nil, err
	}
	arg, ok := op.hasArg()
	if !ok {
		return nil, fmt.Errorf("%s needs a character ID", opNames[op.code])
	}
	id, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("character ID not numeric: %v", arg)
	}
	def, ok := intp.dict[uint16(id)]
	if !ok {
		return nil, ErrNoCharacter
	}
	return def, nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
