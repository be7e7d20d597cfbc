package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/discovery"
	"github.com/owbinding/onewire-go/pkg/inbox"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive discovery console",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		events, closeEvents, err := openEventLog()
		if err != nil {
			return err
		}
		defer closeEvents()

		in := inbox.New(logger)
		services, closeServices, err := openServices(cfg.Bridges, in, events)
		if err != nil {
			return err
		}
		defer closeServices()

		sched := discovery.NewScheduler(discovery.SchedulerConfig{
			MaxConcurrent: cfg.Discovery.MaxConcurrent,
			Logger:        logger,
		}, services...)

		c, err := newConsole(sched, in)
		if err != nil {
			return err
		}
		c.Run(ctx, cancel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// console is the interactive command loop.
type console struct {
	sched *discovery.Scheduler
	inbox *inbox.Inbox
	rl    *readline.Instance
}

func newConsole(sched *discovery.Scheduler, in *inbox.Inbox) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "owdiscover> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{sched: sched, inbox: in, rl: rl}, nil
}

// Run reads commands until quit, EOF or ctx is done.
func (c *console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	out := c.rl.Stdout()
	printConsoleHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			cancel()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !c.exec(ctx, out, strings.ToLower(parts[0]), parts[1:]) {
			fmt.Fprintln(out, "Exiting...")
			cancel()
			return
		}
	}
}

// exec runs one command. It returns false when the console should exit.
func (c *console) exec(ctx context.Context, out io.Writer, cmd string, args []string) bool {
	switch cmd {
	case "help", "?":
		printConsoleHelp(out)

	case "scan", "s":
		c.cmdScan(ctx, out, args)

	case "list", "l":
		c.cmdList(out)

	case "show":
		c.cmdShow(out, args)

	case "bridges", "b":
		c.cmdBridges(out)

	case "remove", "rm":
		c.cmdRemove(out, args)

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func printConsoleHelp(w io.Writer) {
	fmt.Fprintln(w, `
Discovery Commands:
  scan [bridge]   - Scan all bridges (or one) now
  list            - List discovered devices
  show <uid>      - Show properties of one device
  bridges         - List bridges and their last scan
  remove <bridge> - Stop discovery on a bridge and drop its results

  help            - Show this help
  quit            - Exit`)
}

func (c *console) cmdScan(ctx context.Context, out io.Writer, args []string) {
	if len(args) == 0 {
		for _, r := range c.sched.ScanAll(ctx) {
			if r != nil {
				printReport(out, r)
			}
		}
		return
	}

	svc := c.service(args[0])
	if svc == nil {
		fmt.Fprintf(out, "Unknown bridge: %s\n", args[0])
		return
	}
	report, err := svc.TriggerScan(ctx)
	if err != nil {
		errColor.Fprintf(out, "Scan failed: %v\n", err)
		return
	}
	printReport(out, report)
}

func (c *console) cmdList(out io.Writer) {
	results := c.inbox.List()
	if len(results) == 0 {
		dimColor.Fprintln(out, "Inbox is empty")
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "  %-44s %-28s %s\n", r.ThingUID, r.Label, r.Property(discovery.PropertyModelID))
	}
	fmt.Fprintf(out, "%d devices\n", len(results))
}

func (c *console) cmdShow(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: show <uid>")
		return
	}
	r, ok := c.inbox.Get(args[0])
	if !ok {
		fmt.Fprintf(out, "Not in inbox: %s\n", args[0])
		return
	}
	printResult(out, r)
}

func (c *console) cmdBridges(out io.Writer) {
	services := c.sched.Services()
	if len(services) == 0 {
		dimColor.Fprintln(out, "No bridges")
		return
	}
	for _, svc := range services {
		last := "never"
		if t := svc.LastScan(); !t.IsZero() {
			last = t.Format("15:04:05")
		}
		fmt.Fprintf(out, "  %-20s last scan %s\n", svc.BridgeID(), last)
	}
}

func (c *console) cmdRemove(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: remove <bridge>")
		return
	}
	if !c.sched.Remove(args[0]) {
		fmt.Fprintf(out, "Unknown bridge: %s\n", args[0])
		return
	}
	okColor.Fprintf(out, "Removed %s\n", args[0])
}

func (c *console) service(bridgeID string) *discovery.Service {
	for _, svc := range c.sched.Services() {
		if svc.BridgeID() == bridgeID {
			return svc
		}
	}
	return nil
}
