// Package repl implements the interactive session: it reads lines, routes
// built-in commands, and hands everything else to the dispatcher.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/polo-ai/polo/internal/agent"
	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/memory"
)

const maxLineHistory = 1000

// REPL drives one interactive session.
type REPL struct {
	dispatcher  *agent.Dispatcher
	store       *memory.Store
	exec        *executor.Executor
	log         zerolog.Logger
	prefix      string
	historyFile string
	version     string

	in      io.Reader
	out     io.Writer
	count   int
	history []string
	running bool
}

// New wires a REPL over stdin/stdout.
func New(d *agent.Dispatcher, store *memory.Store, exec *executor.Executor, prefix, historyFile, version string, log zerolog.Logger) *REPL {
	if prefix == "" {
		prefix = "!"
	}
	return &REPL{
		dispatcher:  d,
		store:       store,
		exec:        exec,
		log:         log,
		prefix:      prefix,
		historyFile: historyFile,
		version:     version,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// Run processes lines until /exit, EOF, or ctx cancellation.
func (r *REPL) Run(ctx context.Context) error {
	r.loadLineHistory()
	defer r.saveLineHistory()

	r.banner()
	r.running = true

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for r.running {
		fmt.Fprintf(r.out, "[%s](%d): ", filepath.Base(cwd()), r.count)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nexiting...")
			return nil
		case line, ok = <-lines:
			if !ok {
				fmt.Fprintln(r.out, "\ngoodbye!")
				return scanner.Err()
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.count++
		r.remember(line)

		var reply string
		if strings.HasPrefix(line, "/") {
			reply = r.builtin(line)
		} else {
			reply = r.dispatcher.Handle(ctx, line)
		}
		if reply != "" {
			fmt.Fprintln(r.out, reply)
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

func (r *REPL) banner() {
	fmt.Fprintf(r.out, "polo %s — command-line assistant\n", r.version)
	fmt.Fprintf(r.out, "chat: type a message | tools: %scommand args | built-ins: /help | quit: /exit\n", r.prefix)
	if st := r.store.Stats(); st.TotalTurns > 0 {
		fmt.Fprintf(r.out, "welcome back: %d turns remembered since %s\n", st.TotalTurns, st.FirstTimestamp.Format("2006-01-02"))
	} else {
		fmt.Fprintln(r.out, "starting a fresh conversation; exchanges are persisted between sessions")
	}
	if n := r.store.Salvaged(); n > 0 {
		fmt.Fprintf(r.out, "note: %d corrupt log records were dropped during recovery\n", n)
	}
	fmt.Fprintln(r.out)
}

// builtin executes a /command and returns its output.
func (r *REPL) builtin(line string) string {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		return helpText(r.prefix)
	case "exit", "quit":
		r.running = false
		return fmt.Sprintf("goodbye! %d commands this session, %d turns remembered.", r.count, r.store.Len())
	case "clear":
		fmt.Fprint(r.out, "\033[2J\033[H")
		return ""
	case "history":
		return r.lineHistoryText()
	case "memory":
		return r.memoryText()
	case "stats":
		return r.statsText()
	case "tools":
		return r.toolsText()
	case "about":
		return aboutText(r.version)
	default:
		return fmt.Sprintf("unknown built-in /%s; /help lists the available commands", name)
	}
}

func (r *REPL) lineHistoryText() string {
	if len(r.history) == 0 {
		return "no command history yet"
	}
	n := 10
	if n > len(r.history) {
		n = len(r.history)
	}
	var b strings.Builder
	b.WriteString("recent commands:\n")
	start := len(r.history) - n
	for i, l := range r.history[start:] {
		fmt.Fprintf(&b, "%3d. %s\n", start+i+1, l)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *REPL) memoryText() string {
	st := r.store.Stats()
	var b strings.Builder
	b.WriteString("memory:\n")
	fmt.Fprintf(&b, "  turns:     %d\n", st.TotalTurns)
	if st.TotalTurns > 0 {
		fmt.Fprintf(&b, "  first:     %s\n", st.FirstTimestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "  last:      %s\n", st.LastTimestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "  avg sizes: user %.0f, assistant %.0f runes\n", st.AvgUserLen, st.AvgAssistantLen)
	}
	fmt.Fprintf(&b, "  file:      %s (%d bytes)\n", r.store.Path(), st.FileSize)
	if recent := r.store.Recent(5); len(recent) > 0 {
		b.WriteString("  recent:\n")
		for _, t := range recent {
			fmt.Fprintf(&b, "    %s\n", memory.Preview(t, 60))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *REPL) statsText() string {
	var b strings.Builder
	b.WriteString("session:\n")
	fmt.Fprintf(&b, "  commands:  %d\n", r.count)
	fmt.Fprintf(&b, "  directory: %s\n", cwd())
	fmt.Fprintf(&b, "  tool runs: %d (this process)\n", len(r.exec.History(100)))
	fmt.Fprintf(&b, "  log turns: %d", r.store.Len())
	return b.String()
}

func (r *REPL) toolsText() string {
	usages := r.exec.History(10)
	if len(usages) == 0 {
		return "no tool activity yet"
	}
	var b strings.Builder
	b.WriteString("recent tool activity:\n")
	for i, u := range usages {
		status := "ok"
		if !u.Success {
			status = "failed"
		}
		args := u.Args
		if rs := []rune(args); len(rs) > 40 {
			args = string(rs[:40]) + "..."
		}
		fmt.Fprintf(&b, "%3d. [%s] %-14s %-6s %s\n", i+1, u.Time.Format("15:04:05"), u.Tool, status, args)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *REPL) remember(line string) {
	r.history = append(r.history, line)
	if len(r.history) > maxLineHistory {
		r.history = r.history[len(r.history)-maxLineHistory:]
	}
}

func (r *REPL) loadLineHistory() {
	if r.historyFile == "" {
		return
	}
	b, err := os.ReadFile(r.historyFile)
	if err != nil {
		return
	}
	for _, l := range strings.Split(string(b), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			r.history = append(r.history, l)
		}
	}
	if len(r.history) > maxLineHistory {
		r.history = r.history[len(r.history)-maxLineHistory:]
	}
}

func (r *REPL) saveLineHistory() {
	if r.historyFile == "" {
		return
	}
	data := strings.Join(r.history, "\n")
	if data != "" {
		data += "\n"
	}
	if err := os.WriteFile(r.historyFile, []byte(data), 0o600); err != nil {
		r.log.Warn().Err(err).Str("path", r.historyFile).Msg("could not save line history")
	}
}

func cwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "?"
	}
	return wd
}

func helpText(prefix string) string {
	p := prefix
	return strings.TrimSpace(fmt.Sprintf(`
chat:
  type a message to get a context-aware reply

tool commands (prefix %s):
  %sshell <command>        run a shell command (aliases: sh, run)
  %sread <path>            print a file (aliases: cat)
  %swrite <path> <text>    write a file (aliases: echo)
  %sls [path]              list a directory (aliases: list)
  %sfind <pattern> [path]  find files by name (aliases: search)
  %scopy <src> <dst>       copy a file (aliases: cp; add --overwrite to replace)
  %smove <src> <dst>       move a file (aliases: mv)
  %sdelete <path>          delete a file (aliases: rm; add --force for directories)
  %ssysinfo                show host and environment information

built-ins:
  /help /exit /quit /clear /history /memory /stats /tools /about
`, p, p, p, p, p, p, p, p, p, p))
}

func aboutText(version string) string {
	return strings.TrimSpace(fmt.Sprintf(`
polo %s — a single-user command-line assistant
 - persisted conversation memory with best-effort corruption recovery
 - sandboxable shell and file tools with timeouts and structured results
 - deterministic intent replies; no network access
`, version))
}
