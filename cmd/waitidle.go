package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielealbano/android-remote-control-mcp/internal/model"
	"github.com/danielealbano/android-remote-control-mcp/internal/output"
	"github.com/danielealbano/android-remote-control-mcp/internal/platform"
	"github.com/danielealbano/android-remote-control-mcp/internal/tree"
)

// WaitIdleResult is the output of the wait-idle command.
type WaitIdleResult struct {
	Idle        bool   `yaml:"idle"            json:"idle"`
	Polls       int    `yaml:"polls"           json:"polls"`
	Elapsed     string `yaml:"elapsed"         json:"elapsed"`
	Fingerprint string `yaml:"fingerprint"     json:"fingerprint"`
	Error       string `yaml:"error,omitempty" json:"error,omitempty"`
}

var waitIdleCmd = &cobra.Command{
	Use:   "wait-idle",
	Short: "Poll until the UI structure stops changing",
	Long: `Repeatedly snapshot the device and compare structural fingerprints until
the required number of consecutive polls come back identical, or the timeout
expires. Any window appearing, disappearing, or changing contents resets the
settle count.`,
	RunE: runWaitIdle,
}

func init() {
	rootCmd.AddCommand(waitIdleCmd)
	waitIdleCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
	waitIdleCmd.Flags().Int("timeout", 10, "Max seconds to wait")
	waitIdleCmd.Flags().Int("settle", 2, "Consecutive identical polls required to call the UI idle")
	waitIdleCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runWaitIdle(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	intervalMs, _ := cmd.Flags().GetInt("interval")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	settle, _ := cmd.Flags().GetInt("settle")

	result := waitForIdle(provider,
		time.Duration(intervalMs)*time.Millisecond,
		time.Duration(timeoutSec)*time.Second,
		settle)
	return output.Print(result)
}

// waitForIdle runs the fingerprint poll loop. The first snapshot establishes
// the baseline; each subsequent equal fingerprint counts toward settle, and
// any change resets the count with the new digest as the baseline.
func waitForIdle(provider *platform.Provider, interval, timeout time.Duration, settle int) WaitIdleResult {
	if settle < 1 {
		settle = 1
	}
	start := time.Now()
	deadline := start.Add(timeout)

	var last string
	stable := 0
	polls := 0
	for {
		snap, err := tree.SnapshotAll(provider)
		if err != nil {
			return WaitIdleResult{
				Polls:   polls,
				Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Error:   err.Error(),
			}
		}
		polls++
		fp := model.Fingerprint(snap)
		if fp == last {
			stable++
		} else {
			stable = 0
			last = fp
		}
		if stable >= settle {
			return WaitIdleResult{
				Idle:        true,
				Polls:       polls,
				Elapsed:     fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Fingerprint: fp,
			}
		}
		if time.Now().After(deadline) {
			return WaitIdleResult{
				Polls:       polls,
				Elapsed:     fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Fingerprint: fp,
			}
		}
		time.Sleep(interval)
	}
}
