package config

import (
	"fmt"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/stefanprodan/kubecleanup/pkg/cleanup"
)

const (
	DefaultKubectl = "kubectl"
)

type Config struct {
	// Kubectl is the command used to reach the cluster, it may contain
	// extra arguments e.g. 'kubectl --request-timeout=30s'.
	Kubectl string `json:"kubectl"`

	// KubeConfig, Context and Namespace are forwarded to kubectl when set.
	KubeConfig string `json:"kubeconfig,omitempty"`
	Context    string `json:"context,omitempty"`
	Namespace  string `json:"namespace,omitempty"`

	// Timeout bounds the whole cleanup, zero means no timeout.
	Timeout time.Duration `json:"timeout"`

	// FailOnError makes the run exit with an error if any deletion failed.
	FailOnError bool `json:"failOnError"`

	// Categories lists the resource categories in deletion order.
	Categories []cleanup.Category `json:"categories"`
}

// NewConfig returns the default settings.
func NewConfig() *Config {
	return &Config{
		Kubectl:    DefaultKubectl,
		Categories: cleanup.Categories(),
	}
}

// GlobalArgs returns the kubectl flags derived from the connection settings.
func (c *Config) GlobalArgs() []string {
	var args []string
	if c.KubeConfig != "" {
		args = append(args, "--kubeconfig", c.KubeConfig)
	}
	if c.Context != "" {
		args = append(args, "--context", c.Context)
	}
	if c.Namespace != "" {
		args = append(args, "--namespace", c.Namespace)
	}
	return args
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Kubectl) == "" {
		return fmt.Errorf("the kubectl command can't be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("the timeout can't be negative")
	}
	return nil
}

// YAML returns the settings in YAML format.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
