package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// maxLineSize bounds a single script line.
const maxLineSize = 1 << 20

// script applies session commands, one per line, to a store.
type script struct {
	store *todo.Store
	log   *log.Logger
	out   io.Writer
	group bool
}

func (sc *script) run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := sc.exec(line); err != nil {
			return usagef("line %d: %v", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

func (sc *script) exec(line string) error {
	name, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, rest = line[:i], line[i+1:]
	}

	switch name {
	case "add":
		it, ok := sc.store.Add(rest)
		if !ok {
			sc.log.Debug("ignored", "input", rest)
			return nil
		}
		sc.log.Debug("added", "id", it.ID, "text", it.Text)

	case "toggle", "done":
		id, err := parseID(name, rest)
		if err != nil {
			return err
		}
		if sc.store.Toggle(id) {
			sc.log.Debug("toggled", "id", id)
		} else {
			sc.log.Debug("ignored", "op", name, "id", id)
		}

	case "rm":
		id, err := parseID(name, rest)
		if err != nil {
			return err
		}
		if sc.store.Remove(id) {
			sc.log.Debug("removed", "id", id)
		} else {
			sc.log.Debug("ignored", "op", name, "id", id)
		}

	case "ls":
		if strings.TrimSpace(rest) != "" {
			return fmt.Errorf("usage: ls")
		}
		for _, ln := range ui.Lines(sc.store.Items(), sc.group) {
			fmt.Fprintln(sc.out, ln)
		}
		fmt.Fprintln(sc.out)

	default:
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

func parseID(name, rest string) (int64, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return 0, fmt.Errorf("usage: %s <id>", name)
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %s", name, fields[0])
	}
	return id, nil
}
