package parser

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/studentbook/studentbook/internal/application/command"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARSER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains configuration for the parser.
type Config struct {
	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables debug logging for dispatch decisions.
	Debug bool

	// AllowLessonOverlap disables the overlap check of scheduled lessons.
	AllowLessonOverlap bool
}

// ParseFunc turns the arguments following a command word into a command.
type ParseFunc func(args string) (command.Command, error)

// ══════════════════════════════════════════════════════════════════════════════
// PARSER
// Routes a command line to the parser registered for its first word.
// ══════════════════════════════════════════════════════════════════════════════

// Parser dispatches command lines by command word.
type Parser struct {
	config Config
	logger *slog.Logger

	parsers   map[string]ParseFunc
	parsersMu sync.RWMutex
}

// New creates a Parser with every built-in command registered.
func New(config Config) *Parser {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	p := &Parser{
		config:  config,
		logger:  config.Logger,
		parsers: make(map[string]ParseFunc),
	}
	p.registerDefaults()
	return p
}

func (p *Parser) registerDefaults() {
	p.Register(command.WordAdd, ParseAdd)
	p.Register(command.WordEdit, ParseEdit)
	p.Register(command.WordDelete, ParseDelete)
	p.Register(command.WordRemark, ParseRemark)
	p.Register(command.WordGrade, ParseGrade)
	p.Register(command.WordTag, ParseTag)
	p.Register(command.WordDeleteAttribute, ParseDeleteAttribute)
	p.Register(command.WordSchedule, func(args string) (command.Command, error) {
		return ParseSchedule(args, p.config.AllowLessonOverlap)
	})
	p.Register(command.WordUnschedule, ParseUnschedule)
	p.Register(command.WordAttend, ParseAttend)
	p.Register(command.WordSearch, ParseSearch)
	p.Register(command.WordSearchSlash, ParseSearch)
	p.Register(command.WordList, noArgs(command.ListCommand{}))
	p.Register(command.WordClear, noArgs(command.ClearCommand{}))
	p.Register(command.WordHelp, noArgs(command.HelpCommand{}))
	p.Register(command.WordExit, noArgs(command.ExitCommand{}))
}

// noArgs ignores trailing arguments, as list, clear, help and exit do.
func noArgs(c command.Command) ParseFunc {
	return func(string) (command.Command, error) { return c, nil }
}

// Register binds word to fn, replacing any earlier registration.
func (p *Parser) Register(word string, fn ParseFunc) {
	p.parsersMu.Lock()
	defer p.parsersMu.Unlock()

	p.parsers[word] = fn

	if p.config.Debug {
		p.logger.Debug("registered command parser", "command", word)
	}
}

// Words returns the registered command words.
func (p *Parser) Words() []string {
	p.parsersMu.RLock()
	defer p.parsersMu.RUnlock()

	out := make([]string, 0, len(p.parsers))
	for w := range p.parsers {
		out = append(out, w)
	}
	return out
}

// Parse parses a full command line.
func (p *Parser) Parse(input string) (command.Command, error) {
	word, args := SplitCommandWord(input)
	if word == "" {
		return nil, shared.InvalidCommandFormat("parser", command.HelpText())
	}

	p.parsersMu.RLock()
	fn, ok := p.parsers[word]
	p.parsersMu.RUnlock()

	if !ok {
		if p.config.Debug {
			p.logger.Debug("unknown command word", "command", word)
		}
		return nil, shared.ErrCommandUnknown
	}
	return fn(args)
}

// SplitCommandWord returns the first whitespace-delimited word of input and
// the untrimmed remainder.
func SplitCommandWord(input string) (word, args string) {
	input = strings.TrimSpace(input)
	if i := strings.IndexAny(input, " \t"); i >= 0 {
		return input[:i], input[i:]
	}
	return input, ""
}

// IsSearchLine reports whether input is a search command being typed.
func IsSearchLine(input string) bool {
	trimmed := strings.TrimLeft(input, " \t")
	return strings.HasPrefix(trimmed, command.WordSearch) || strings.HasPrefix(trimmed, command.WordSearchSlash)
}
