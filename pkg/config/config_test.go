package config

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestConfig_GlobalArgs(t *testing.T) {
	g := NewWithT(t)

	c := NewConfig()
	g.Expect(c.GlobalArgs()).To(BeEmpty())

	c.KubeConfig = "/tmp/kubeconfig"
	c.Context = "dev"
	c.Namespace = "apps"
	g.Expect(c.GlobalArgs()).To(Equal([]string{
		"--kubeconfig", "/tmp/kubeconfig",
		"--context", "dev",
		"--namespace", "apps",
	}))
}

func TestConfig_Validate(t *testing.T) {
	g := NewWithT(t)

	c := NewConfig()
	g.Expect(c.Validate()).To(Succeed())

	c.Timeout = -time.Second
	g.Expect(c.Validate()).To(MatchError(ContainSubstring("timeout")))

	for _, kubectl := range []string{"", "  ", "\t"} {
		c = NewConfig()
		c.Kubectl = kubectl
		g.Expect(c.Validate()).To(MatchError(ContainSubstring("kubectl")))
	}
}

func TestConfig_YAML(t *testing.T) {
	g := NewWithT(t)

	c := NewConfig()
	c.Timeout = time.Minute

	data, err := c.YAML()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(ContainSubstring("kubectl: kubectl"))
	g.Expect(string(data)).To(ContainSubstring("path: k8s/deployments/"))
	g.Expect(string(data)).NotTo(ContainSubstring("context:"))
}
