//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run executes the citegraph binary with the given arguments.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Edges collects citation edges for all configured sub-areas.
func Edges() error {
	mg.Deps(Build)
	return run("edges", "--out", "citations_edgelist.csv")
}

// Graph partitions the collected edge list into per-sub-area GEXF files.
func Graph() error {
	mg.Deps(Build)
	return run("graph", "--in", "citations_edgelist.csv", "--out-dir", "graphs")
}

// Verify checks the collected edge list for mutual citations.
func Verify() error {
	mg.Deps(Build)
	return run("verify", "--in", "citations_edgelist.csv")
}
