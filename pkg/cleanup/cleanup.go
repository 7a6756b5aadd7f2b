package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/stefanprodan/kubecleanup/pkg/engine"
)

// Category is a kind of Kubernetes object backed by a manifests directory.
type Category struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var categories = []Category{
	{Name: "deployments", Path: "k8s/deployments/"},
	{Name: "services", Path: "k8s/services/"},
	{Name: "configmaps", Path: "k8s/configmaps/"},
	{Name: "secrets", Path: "k8s/secrets/"},
}

// Categories returns the resource categories in deletion order.
func Categories() []Category {
	return append([]Category{}, categories...)
}

const ignoreNotFoundFlag = "--ignore-not-found=true"

// Command returns the kubectl args that delete the objects of the given category.
// The global args are appended after the ignore-not-found flag.
func Command(c Category, globalArgs ...string) []string {
	args := []string{"delete", "-f", c.Path, ignoreNotFoundFlag}
	return append(args, globalArgs...)
}

// Result holds the outcome of deleting one category.
type Result struct {
	Category Category
	Args     []string
	Output   string
	Err      error
}

// Summary holds the results of a cleanup run in execution order.
type Summary struct {
	Results []Result
}

// Failed returns the results of the commands that exited with an error.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Cleaner deletes the resource categories one by one.
// A failed deletion is reported and the next category is processed.
type Cleaner struct {
	Runner engine.Runner
	Out    io.Writer

	// GlobalArgs are forwarded to every kubectl invocation, e.g. --context.
	GlobalArgs []string

	// Echo, when set, is called with the command line before it runs.
	Echo func(command string)
}

// Run issues the delete commands sequentially and prints the progress.
func (c *Cleaner) Run(ctx context.Context) *Summary {
	summary := &Summary{}

	fmt.Fprintln(c.Out, "Cleaning up Kubernetes resources...")

	for _, category := range categories {
		fmt.Fprintf(c.Out, "Deleting %s...\n", category.Name)

		args := Command(category, c.GlobalArgs...)
		if c.Echo != nil {
			c.Echo(strings.Join(args, " "))
		}

		out, err := c.Runner.Run(ctx, args...)
		if err != nil {
			c.printError(args, err)
		}

		summary.Results = append(summary.Results, Result{
			Category: category,
			Args:     args,
			Output:   out,
			Err:      err,
		})
	}

	c.printSummary(summary)
	fmt.Fprintln(c.Out, color.GreenString("Cleanup completed successfully!"))

	return summary
}

func (c *Cleaner) printError(args []string, err error) {
	command := strings.Join(args, " ")
	stderr := err.Error()

	var cmdErr *engine.CommandError
	if errors.As(err, &cmdErr) {
		command = cmdErr.Command
		if strings.TrimSpace(cmdErr.Stderr) != "" {
			stderr = cmdErr.Stderr
		} else if cmdErr.Err != nil {
			stderr = cmdErr.Err.Error()
		}
	}

	fmt.Fprintln(c.Out, color.RedString("Error executing command: %s", command))
	fmt.Fprintln(c.Out, color.RedString("Error message: %s", strings.TrimSuffix(stderr, "\n")))
}

func (c *Cleaner) printSummary(s *Summary) {
	var rows [][]string
	for _, r := range s.Results {
		status := "succeeded"
		if r.Err != nil {
			status = "failed"
		}
		rows = append(rows, []string{r.Category.Name, r.Category.Path, status})
	}

	table := tablewriter.NewWriter(c.Out)
	table.SetHeader([]string{"category", "path", "status"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
