package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log" // used before the logger is ready
	"os"
	"sort"
	"strconv"
	"strings"

	"memowidget/internal/app"
	"memowidget/internal/config"
	"memowidget/internal/logger"
	"memowidget/internal/prefs"
	"memowidget/internal/render"
	"memowidget/pkg/memo"
)

const usage = `usage: memowidget [flags] <command> [args]

commands:
  show [width]                 render the widget in the terminal
  json                         print the stored memo document
  stat                         print text and span counts
  set <text>                   replace the memo text
  type <text>                  append text at the end of the memo
  bold|italic|underline <a> <b>
                               toggle a style on [a, b)
  color <a> <b> <#RRGGBB>      color [a, b)
  size <a> <b> <delta>         grow or shrink [a, b)
  fontsize <delta>             change the widget font size
  undo | redo                  step through edit history
  gravity <name>               align text (top_start ... bottom_end)
  alpha <0-255>                background opacity
  bg <#RRGGBB>                 background color
  copy [a b]                   copy text to the clipboard
  paste                        append clipboard text
  purge                        delete every stored value of the widget
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "memowidget: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	var flags config.Flags
	flags.Define(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfgPath := flags.ConfigFilePath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, unknown, err := config.Load(cfgPath)
	if err != nil {
		stlog.Printf("Warning: %v, using defaults", err)
	}
	flags.ApplyOverrides(cfg)

	if err := logger.Init(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()
	for _, k := range unknown {
		logger.Warnf("config: unknown key %q in %s", k, cfgPath)
	}
	logger.Debugf("store: %s (compression %v)", cfg.Store.Path, cfg.Store.Compression)

	store, err := prefs.OpenFile(cfg.Store.Path, cfg.FileOptions())
	if err != nil {
		return err
	}
	a := app.New(store, app.Options{
		HistoryLimit: cfg.Editor.HistoryLimit,
		SizeScale:    cfg.Editor.SizeScale,
	})
	a.Open(flags.WidgetID)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	changed, err := dispatch(a, cmd, rest, out)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := a.Save(); err != nil {
		return err
	}
	fmt.Fprintln(out, a.Status())
	return nil
}

// dispatch runs one command and reports whether the widget must be saved.
func dispatch(a *app.App, cmd string, args []string, out io.Writer) (bool, error) {
	switch cmd {
	case "show":
		width := 40
		if len(args) > 0 {
			w, err := strconv.Atoi(args[0])
			if err != nil || w <= 0 {
				return false, fmt.Errorf("%w: width %q", errUsage, args[0])
			}
			width = w
		}
		fmt.Fprintln(out, render.Terminal(a.Frame(), width))
		return false, nil
	case "json":
		fmt.Fprintln(out, memo.Serialize(a.Document()))
		return false, nil
	case "stat":
		printStats(out, a)
		return false, nil
	case "set":
		a.SetText(strings.Join(args, " "))
		return true, nil
	case "type":
		a.Select(a.Document().Len(), a.Document().Len())
		return a.TypeText(strings.Join(args, " ")), nil
	case "bold", "italic", "underline":
		if err := selectRange(a, args, 2); err != nil {
			return false, err
		}
		if err := a.Invoke(cmd); err != nil {
			return false, err
		}
		return true, nil
	case "color":
		if err := selectRange(a, args, 3); err != nil {
			return false, err
		}
		return true, a.SetColorHex(args[2])
	case "size":
		if err := selectRange(a, args, 3); err != nil {
			return false, err
		}
		delta, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return false, fmt.Errorf("%w: delta %q", errUsage, args[2])
		}
		return a.AdjustSize(delta), nil
	case "fontsize":
		if len(args) != 1 {
			return false, errUsage
		}
		delta, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return false, fmt.Errorf("%w: delta %q", errUsage, args[0])
		}
		a.Select(0, 0)
		return a.AdjustSize(delta), nil
	case "undo":
		return a.Undo(), nil
	case "redo":
		return a.Redo(), nil
	case "gravity":
		if len(args) != 1 {
			return false, errUsage
		}
		g, err := prefs.ParseGravity(args[0])
		if err != nil {
			return false, err
		}
		a.SetGravity(g)
		return true, nil
	case "alpha":
		if len(args) != 1 {
			return false, errUsage
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("%w: alpha %q", errUsage, args[0])
		}
		a.SetAlpha(v)
		return true, nil
	case "bg":
		if len(args) != 1 {
			return false, errUsage
		}
		return true, a.SetBackgroundHex(args[0])
	case "copy":
		if len(args) > 0 {
			if err := selectRange(a, args, 2); err != nil {
				return false, err
			}
		}
		if err := a.Copy(); err != nil {
			return false, err
		}
		fmt.Fprintln(out, a.Status())
		return false, nil
	case "paste":
		a.Select(a.Document().Len(), a.Document().Len())
		return true, a.Paste()
	case "purge":
		if err := a.Delete(a.ID()); err != nil {
			return false, err
		}
		fmt.Fprintln(out, a.Status())
		return false, nil
	default:
		return false, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func selectRange(a *app.App, args []string, want int) error {
	if len(args) != want {
		return errUsage
	}
	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("%w: range %q %q", errUsage, args[0], args[1])
	}
	a.Select(start, end)
	return nil
}

func printStats(out io.Writer, a *app.App) {
	st := a.Document().Stats()
	fmt.Fprintf(out, "units %d, runes %d, graphemes %d, spans %d\n", st.Units, st.Runes, st.Graphemes, st.Spans)
	kinds := make([]memo.Kind, 0, len(st.SpansKinds))
	for k := range st.SpansKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-9s %d\n", k, st.SpansKinds[k])
	}
	h := a.History()
	fmt.Fprintf(out, "history: %d undo, %d redo (limit %d)\n", h.UndoLen(), h.RedoLen(), h.Limit())
}
