package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gpiotask/core"
	"gpiotask/demo"
)

var (
	simOpts = struct {
		config string
		fast   uint32
	}{}

	rootCmd = &cobra.Command{
		Use:   "gpiotask-sim",
		Short: "Run the gpiotask demo on a simulated board",
		Long: "Run the supervisor and its tasks against a simulated GPIO driver. " +
			"The console goes to stdout. Press Enter to press the button, " +
			"type ps to list tasks, q to quit.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := demo.DefaultConfig()
			if simOpts.config != "" {
				data, err := os.ReadFile(simOpts.config)
				if err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
				loaded, err := demo.LoadConfig(data)
				if err != nil {
					return err
				}
				cfg = *loaded
			}
			return run(cfg)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&simOpts.config, "config", "c", "", "JSON configuration file")
	rootCmd.Flags().Uint32Var(&simOpts.fast, "fast", 1, "Run the clock N times faster than real time")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg demo.Config) error {
	gpio := core.NewSimGPIODriver()
	clock := core.NewSystemClock()
	clock.Speedup = simOpts.fast

	console := core.NewConsole(func(s string) {
		fmt.Println(s)
	})
	sched := core.NewScheduler(clock, console)

	sup, err := demo.Start(sched, gpio, cfg)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sup.Wait()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- strings.TrimSpace(scanner.Text())
		}
		close(input)
	}()

	// Long enough for at least one poll to see the level
	hold := core.MsToTicks(cfg.PollIntervalMs).Duration() * 3 / 2
	if simOpts.fast > 1 {
		hold /= time.Duration(simOpts.fast)
	}

	for {
		select {
		case line, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			switch line {
			case "":
				gpio.Drive(cfg.ButtonPin, core.LevelLow)
				time.Sleep(hold)
				gpio.Release(cfg.ButtonPin)
			case "ps":
				printTasks(sched)
			case "q", "quit", "exit":
				sup.Handle().Delete()
				return <-done
			default:
				fmt.Fprintf(os.Stderr, "Unknown command: %s\n", line)
			}

		case <-quit:
			sup.Handle().Delete()
			return <-done

		case err := <-done:
			return err
		}
	}
}

func printTasks(sched *core.Scheduler) {
	fmt.Fprintf(os.Stderr, "%-18s %-8s %5s %6s\n", "NAME", "STATE", "PRIO", "STACK")
	for _, t := range sched.Tasks() {
		fmt.Fprintf(os.Stderr, "%-18s %-8s %5d %6d\n", t.Name, t.State, t.Priority, t.StackSize)
	}
}
