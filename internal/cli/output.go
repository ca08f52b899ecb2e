package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLoginResult(v)
	case InstallResult:
		o.printInstallResult(v)
	case LaunchResult:
		o.printLaunchResult(v)
	case DiagnoseReport:
		o.printDiagnoseReport(v)
	case VersionInfo:
		fmt.Printf("meowcraft %s\n", v.Version)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LoginResult reports a materialized account
type LoginResult struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// InstallResult reports the instance content condition
type InstallResult struct {
	Instance  string `json:"instance"`
	Installed bool   `json:"installed"`
	Path      string `json:"path"`
}

// LaunchResult reports a completed launch handoff
type LaunchResult struct {
	Instance    string `json:"instance"`
	DisplayName string `json:"display_name"`
	ID          string `json:"id"`
}

// DiagnoseCheck is one line of the diagnose report
type DiagnoseCheck struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// DiagnoseReport is the full environment report
type DiagnoseReport struct {
	Checks []DiagnoseCheck `json:"checks"`
}

// VersionInfo reports the build version
type VersionInfo struct {
	Version string `json:"version"`
}

func (o *Output) printLoginResult(r LoginResult) {
	fmt.Printf("Logged in as %s (%s)\n", r.DisplayName, r.Kind)
	fmt.Printf("  ID: %s\n", r.ID)
}

func (o *Output) printInstallResult(r InstallResult) {
	status := "missing"
	if r.Installed {
		status = "installed"
	}
	fmt.Printf("Instance %s: %s\n", r.Instance, status)
	fmt.Printf("  Path: %s\n", r.Path)
}

func (o *Output) printLaunchResult(r LaunchResult) {
	fmt.Printf("Launched %s as %s\n", r.Instance, r.DisplayName)
}

func (o *Output) printDiagnoseReport(r DiagnoseReport) {
	for _, check := range r.Checks {
		mark := "ok"
		if !check.OK {
			mark = "MISSING"
		}
		fmt.Printf("%-24s %-8s %s", check.Name, mark, check.Path)
		if check.Detail != "" {
			fmt.Printf(" (%s)", check.Detail)
		}
		fmt.Println()
	}
}
