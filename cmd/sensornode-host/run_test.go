//go:build !(rp2040 || rp2350)

package main

import (
	"os"
	"path/filepath"
	"testing"

	"sensornode-go/services/config"
)

func TestDefaultsLayering(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(seed, []byte("loop_delay: 25\nmodules:\n  - \"6,28\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec, err := defaults(options{profile: "pico", seed: seed})
	if err != nil {
		t.Fatal(err)
	}
	st := config.NewStore(nil)
	st.SetDefaults(rec)
	if got, _ := st.Get(config.KeyModule1); got != "6,28" {
		t.Fatalf("module1 = %q, seed should override profile", got)
	}
	if got, _ := st.Get(config.KeySensorUpdateInterval); got != "10000" {
		t.Fatalf("interval = %q, profile value lost", got)
	}
	if got, _ := st.Get(config.KeyLoopDelay); got != "25" {
		t.Fatalf("loop_delay = %q", got)
	}
}

func TestDefaultsUnknownProfile(t *testing.T) {
	if _, err := defaults(options{profile: "nope"}); err == nil {
		t.Fatal("unknown profile accepted")
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("SENSORNODE_BAUD", "115200")
	t.Setenv("SENSORNODE_CONSOLE", "true")
	t.Setenv("SENSORNODE_STORE_SIZE", "junk")
	if envInt("SENSORNODE_BAUD", 0) != 115200 || !envBool("SENSORNODE_CONSOLE", false) {
		t.Fatal("environment not applied")
	}
	if envInt("SENSORNODE_STORE_SIZE", 4096) != 4096 {
		t.Fatal("bad value should keep the default")
	}
}

func TestSeedCommandWritesStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "node.bin")
	cmd := newRootCommand()
	cmd.SetOut(&discard{})
	cmd.SetArgs([]string{"seed", "--store", store, "--profile", "pico_motion"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(store)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[512:515]) != config.Version {
		t.Fatalf("version tag = %q", data[512:515])
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
