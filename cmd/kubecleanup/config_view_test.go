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
	"testing"

	. "github.com/onsi/gomega"
)

func TestConfigView(t *testing.T) {
	g := NewWithT(t)
	resetRunner("")

	output, err := executeCommand("config view --context kind-dev --fail-on-error", "")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(output).To(ContainSubstring("kubectl: kubectl"))
	g.Expect(output).To(ContainSubstring("context: kind-dev"))
	g.Expect(output).To(ContainSubstring("failOnError: true"))
	g.Expect(output).To(MatchRegexp(`(?s)deployments.*services.*configmaps.*secrets`))
	g.Expect(testRunner.calls).To(BeEmpty())
}
