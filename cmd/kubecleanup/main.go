/*
Copyright 2021 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/stefanprodan/kubecleanup/pkg/cleanup"
	"github.com/stefanprodan/kubecleanup/pkg/config"
	"github.com/stefanprodan/kubecleanup/pkg/confirm"
	"github.com/stefanprodan/kubecleanup/pkg/engine"
)

var VERSION = "1.0.0-dev.0"

const PROJECT = "kubecleanup"

var rootCmd = &cobra.Command{
	Use:           PROJECT,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "A command line utility that deletes the Kubernetes objects defined in the k8s/ directory.",
	Long: `Kubecleanup deletes the Kubernetes objects defined in the manifests found under:

- k8s/deployments/
- k8s/services/
- k8s/configmaps/
- k8s/secrets/

The directories are processed in this order with 'kubectl delete -f <dir> --ignore-not-found=true'.
A failed deletion is reported and the cleanup continues with the next directory.
`,
	Example: `  # Ask for confirmation then delete all objects
  kubecleanup

  # Delete all objects without asking, using a specific context
  kubecleanup --yes --context kind-dev

  # Exit with an error if any of the deletions failed
  kubecleanup --yes --fail-on-error
`,
	PersistentPreRunE: loadConfig,
	RunE:              rootCmdRun,
}

type rootFlags struct {
	yes     bool
	verbose bool
}

var (
	rootArgs = rootFlags{}
	logger   = stderrLogger{stderr: os.Stderr}
	cfg      = config.NewConfig()
)

var kubeconfigArgs = newConfigFlags()

// newRunner is replaced in tests to avoid spawning kubectl.
var newRunner = func(kubectl string) (engine.Runner, error) {
	e, err := engine.NewKubectlExecutor(kubectl, nil)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.Kubectl, "kubectl", config.DefaultKubectl,
		"The kubectl command, it can include extra arguments e.g. 'kubectl --request-timeout=30s'.")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", 0,
		"The length of time to wait before giving up on the cleanup, zero means no timeout.")
	rootCmd.PersistentFlags().BoolVar(&cfg.FailOnError, "fail-on-error", false,
		"Exit with an error if any of the deletions failed.")
	rootCmd.PersistentFlags().BoolVar(&rootArgs.verbose, "verbose", false,
		"Print the kubectl commands before running them.")
	rootCmd.Flags().BoolVarP(&rootArgs.yes, "yes", "y", false,
		"Skip the confirmation prompt.")

	kubeconfigArgs.AddFlags(rootCmd.PersistentFlags())

	rootCmd.DisableAutoGenTag = true
	rootCmd.SetOut(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Println(`✗`, err)
		os.Exit(1)
	}
}

// newConfigFlags returns the kubectl connection flags forwarded to every invocation.
func newConfigFlags() *genericclioptions.ConfigFlags {
	kubeconfig, kubecontext, namespace := "", "", ""
	return &genericclioptions.ConfigFlags{
		KubeConfig: &kubeconfig,
		Context:    &kubecontext,
		Namespace:  &namespace,
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg.KubeConfig = *kubeconfigArgs.KubeConfig
	cfg.Context = *kubeconfigArgs.Context
	cfg.Namespace = *kubeconfigArgs.Namespace

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

func rootCmdRun(cmd *cobra.Command, args []string) error {
	streams := genericclioptions.IOStreams{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}

	fmt.Fprintln(streams.Out, "=== Kubernetes Cleanup Script ===")

	var confirmer confirm.Confirmer = confirm.Prompt{In: streams.In, Out: streams.Out}
	if rootArgs.yes {
		confirmer = confirm.Always{}
	}

	ok, err := confirmer.Confirm("Are you sure you want to delete all resources?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(streams.Out, color.YellowString("Cleanup cancelled."))
		return nil
	}

	runner, err := newRunner(cfg.Kubectl)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cleaner := &cleanup.Cleaner{
		Runner:     runner,
		Out:        streams.Out,
		GlobalArgs: cfg.GlobalArgs(),
	}

	if rootArgs.verbose {
		if e, ok := runner.(engine.KubectlExecutor); ok {
			if err := e.LookPath(); err != nil {
				logger.Println(`✗`, err)
			}
		}
		cleaner.Echo = func(command string) {
			logger.Println("running", cfg.Kubectl, command)
		}
	}

	summary := cleaner.Run(ctx)

	if failed := summary.Failed(); cfg.FailOnError && len(failed) > 0 {
		return fmt.Errorf("%d of %d deletions failed", len(failed), len(summary.Results))
	}

	return nil
}
