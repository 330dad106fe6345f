// Package session implements the interactive command loop as a line-driven
// state machine. It owns no I/O: front ends feed it one input line at a time
// and print whatever it returns.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tasklist/internal/logging"
	"tasklist/internal/render"
	"tasklist/internal/task"
)

type Command string

const (
	CmdAdd    Command = "add"
	CmdPrint  Command = "print"
	CmdEdit   Command = "edit"
	CmdDelete Command = "delete"
	CmdEnd    Command = "end"
)

var ErrInvalidCommand = errors.New("invalid command")

func Commands() []Command {
	return []Command{CmdAdd, CmdPrint, CmdEdit, CmdDelete, CmdEnd}
}

func ParseCommand(raw string) (Command, error) {
	c := Command(strings.TrimSpace(raw))
	for _, known := range Commands() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommand, raw)
}

// Saver receives the full list after every successful mutation.
type Saver interface {
	Save(records []task.Record) error
}

type Options struct {
	Table  render.Table
	Now    func() time.Time
	Logger *log.Logger
}

type state int

const (
	stateCommand state = iota
	statePriority
	stateDate
	stateTime
	stateBody
	statePosition
	stateField
	stateEditValue
	stateDone
)

const (
	msgInvalidCommand = "The input action is invalid"
	msgInvalidDate    = "The input date is invalid"
	msgInvalidTime    = "The input time is invalid"
	msgInvalidNumber  = "Invalid task number"
	msgInvalidField   = "Invalid field"
	msgBlank          = "The task is blank"
	msgEmpty          = "No tasks have been input"
	msgChanged        = "The task is changed"
	msgDeleted        = "The task is deleted"
	msgExit           = "Tasklist exiting!"
)

type Session struct {
	list  *task.List
	saver Saver
	table render.Table
	now   func() time.Time
	log   *log.Logger

	state state
	cmd   Command
	draft struct {
		priority task.Marker
		date     string
	}
	entry *task.Entry
	pos   int
	field task.Field

	out []string
}

func New(list *task.List, saver Saver, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Session{
		list:  list,
		saver: saver,
		table: opts.Table,
		now:   opts.Now,
		log:   opts.Logger,
	}
}

// Start returns the first prompt.
func (s *Session) Start() []string {
	s.enter(stateCommand)
	return s.flush()
}

// Handle consumes one input line and returns the lines to show, ending with
// the next prompt when one is due.
func (s *Session) Handle(line string) []string {
	switch s.state {
	case stateCommand:
		s.handleCommand(line)
	case statePriority:
		s.handlePriority(line)
	case stateDate:
		s.handleDate(line)
	case stateTime:
		s.handleTime(line)
	case stateBody:
		s.handleBody(line)
	case statePosition:
		s.handlePosition(line)
	case stateField:
		s.handleField(line)
	case stateEditValue:
		s.handleEditValue(line)
	}
	return s.flush()
}

func (s *Session) Done() bool {
	return s.state == stateDone
}

// Prompt is the question currently awaiting an answer.
func (s *Session) Prompt() string {
	switch s.state {
	case stateCommand:
		names := make([]string, 0, len(Commands()))
		for _, c := range Commands() {
			names = append(names, string(c))
		}
		return fmt.Sprintf("Input an action (%s):", strings.Join(names, ", "))
	case statePriority:
		return priorityPrompt()
	case stateDate:
		return "Input the date (yyyy-mm-dd):"
	case stateTime:
		return "Input the time (hh:mm):"
	case stateBody:
		return "Input a new task (enter a blank line to end):"
	case statePosition:
		return fmt.Sprintf("Input the task number (1-%d):", s.list.Len())
	case stateField:
		names := make([]string, 0, len(task.Fields()))
		for _, f := range task.Fields() {
			names = append(names, string(f))
		}
		return fmt.Sprintf("Input a field to edit (%s):", strings.Join(names, ", "))
	case stateEditValue:
		switch s.field {
		case task.FieldPriority:
			return priorityPrompt()
		case task.FieldDate:
			return "Input the date (yyyy-mm-dd):"
		default:
			return "Input the time (hh:mm):"
		}
	}
	return ""
}

func priorityPrompt() string {
	letters := make([]string, 0, 4)
	for _, p := range task.Priorities() {
		letters = append(letters, p.Letter)
	}
	return fmt.Sprintf("Input the task priority (%s):", strings.Join(letters, ", "))
}

func (s *Session) handleCommand(line string) {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.say(msgInvalidCommand)
		s.enter(stateCommand)
		return
	}
	s.log.Debug("command", "name", cmd)
	s.cmd = cmd

	switch cmd {
	case CmdAdd:
		s.enter(statePriority)
	case CmdPrint:
		if s.requireTasks() {
			s.sayTable()
		}
		s.enter(stateCommand)
	case CmdEdit, CmdDelete:
		if !s.requireTasks() {
			s.enter(stateCommand)
			return
		}
		s.sayTable()
		s.enter(statePosition)
	case CmdEnd:
		s.say(msgExit)
		s.state = stateDone
	}
}

// Invalid priorities are re-prompted without a message.
func (s *Session) handlePriority(line string) {
	p, err := task.ParsePriority(line)
	if err != nil {
		s.enter(statePriority)
		return
	}
	s.draft.priority = p
	s.enter(stateDate)
}

func (s *Session) handleDate(line string) {
	d, err := task.ParseDate(line)
	if err != nil {
		s.say(msgInvalidDate)
		s.enter(stateDate)
		return
	}
	s.draft.date = d
	s.enter(stateTime)
}

func (s *Session) handleTime(line string) {
	t, err := task.ParseTime(line)
	if err != nil {
		s.say(msgInvalidTime)
		s.enter(stateTime)
		return
	}
	s.entry = task.NewEntry(s.draft.date, t, s.draft.priority)
	s.enter(stateBody)
}

func (s *Session) handleBody(line string) {
	switch s.entry.Feed(line) {
	case task.EntryCollecting:
		return
	case task.EntryAborted:
		s.entry = nil
		s.say(msgBlank)
		s.enter(stateCommand)
		return
	}

	r, err := s.entry.Record()
	s.entry = nil
	if err != nil {
		s.say(err.Error())
		s.enter(stateCommand)
		return
	}
	if s.cmd == CmdEdit {
		if err := s.list.ReplaceBody(s.pos, r.Body); err != nil {
			s.say(err.Error())
			s.enter(stateCommand)
			return
		}
		s.log.Info("task body replaced", "position", s.pos, "lines", len(r.Body))
		s.say(msgChanged)
	} else {
		s.list.Add(r)
		s.log.Info("task added", "position", s.list.Len(), "date", r.Date, "time", r.Time)
	}
	s.save()
	s.enter(stateCommand)
}

func (s *Session) handlePosition(line string) {
	pos, err := s.list.Position(line)
	if err != nil {
		s.say(msgInvalidNumber)
		s.enter(statePosition)
		return
	}
	if s.cmd == CmdDelete {
		if err := s.list.Delete(pos); err != nil {
			s.say(msgInvalidNumber)
			s.enter(statePosition)
			return
		}
		s.log.Info("task deleted", "position", pos)
		s.say(msgDeleted)
		s.save()
		s.enter(stateCommand)
		return
	}
	s.pos = pos
	s.enter(stateField)
}

func (s *Session) handleField(line string) {
	f, err := task.ParseField(line)
	if err != nil {
		s.say(msgInvalidField)
		s.enter(stateField)
		return
	}
	s.field = f
	if f != task.FieldBody {
		s.enter(stateEditValue)
		return
	}
	r, err := s.list.At(s.pos)
	if err != nil {
		s.say(msgInvalidNumber)
		s.enter(statePosition)
		return
	}
	s.entry = task.NewEntry(r.Date, r.Time, r.Priority)
	s.enter(stateBody)
}

func (s *Session) handleEditValue(line string) {
	err := s.list.Edit(s.pos, s.field, line)
	switch {
	case err == nil:
		s.log.Info("task edited", "position", s.pos, "field", s.field)
		s.say(msgChanged)
		s.save()
		s.enter(stateCommand)
		return
	case errors.Is(err, task.ErrInvalidDate):
		s.say(msgInvalidDate)
	case errors.Is(err, task.ErrInvalidTime):
		s.say(msgInvalidTime)
	case errors.Is(err, task.ErrInvalidPriority):
	default:
		s.say(err.Error())
		s.enter(stateCommand)
		return
	}
	s.enter(stateEditValue)
}

func (s *Session) requireTasks() bool {
	if s.list.Empty() {
		s.say(msgEmpty)
		return false
	}
	return true
}

func (s *Session) sayTable() {
	table := s.table.Render(s.list.Records(), s.now())
	s.say(strings.Split(strings.TrimSuffix(table, "\n"), "\n")...)
}

// save rewrites the whole list. A failure is reported but the in-memory list
// stays as is.
func (s *Session) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.list.Records()); err != nil {
		s.log.Error("save failed", "err", err)
		s.say(fmt.Sprintf("failed to save tasks: %v", err))
		return
	}
	s.log.Debug("tasks saved", "count", s.list.Len())
}

func (s *Session) enter(st state) {
	s.state = st
	s.say(s.Prompt())
}

func (s *Session) say(lines ...string) {
	s.out = append(s.out, lines...)
}

func (s *Session) flush() []string {
	out := s.out
	s.out = nil
	return out
}
