// Package formatting provides tests for pgbranch's terminal output rendering.
package formatting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// TestWriteInstances verifies the table lists every container with its
// feature, capitalized status, and port bindings.
func TestWriteInstances(t *testing.T) {
	out := new(bytes.Buffer)

	WriteInstances(out, []types.Instance{
		{
			ID:      types.ContainerID("sha256:aedc3b99dc8bd394c2a0d2e076a53a90df1cb26f1db6ae3ac25e5d03bf17613f"),
			Name:    "pgbranch_feature_login",
			Feature: "feature_login",
			State:   "running",
			Running: true,
			Ports:   "0.0.0.0:5433->5432/tcp",
		},
		{
			ID:      types.ContainerID("sha256:ab9b9f3a85e8224ede2e5ba1d40eb846ad02adba09a81fa4c1c1cbb481c119a7"),
			Name:    "pgbranch_hotfix_2024",
			Feature: "hotfix_2024",
			State:   "exited",
		},
	})

	rendered := out.String()

	assert.Contains(t, rendered, "NAME")
	assert.Contains(t, rendered, "FEATURE")
	assert.Contains(t, rendered, "STATUS")
	assert.Contains(t, rendered, "PORTS")
	assert.Contains(t, rendered, "pgbranch_feature_login")
	assert.Contains(t, rendered, "feature_login")
	assert.Contains(t, rendered, "Running")
	assert.Contains(t, rendered, "0.0.0.0:5433->5432/tcp")
	assert.Contains(t, rendered, "pgbranch_hotfix_2024")
	assert.Contains(t, rendered, "Exited")
	// Rounded corners come from the table style.
	assert.Contains(t, rendered, "╭")
}

// TestWriteInstances_Empty verifies an empty listing prints a notice instead
// of an empty table.
func TestWriteInstances_Empty(t *testing.T) {
	out := new(bytes.Buffer)

	WriteInstances(out, nil)

	assert.Contains(t, out.String(), "No database containers found")
	assert.NotContains(t, out.String(), "NAME")
}
