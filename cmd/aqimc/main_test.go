package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
)

// execCLI runs the command tree in process and captures both streams.
func execCLI(args ...string) (stdout string, stderr string, err error) {
	root := newRootCommand()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

var sampleArgs = []string{
	"--key1", "DELTA",
	"--key2", "ALPHA",
	"--key3", "ALPHA",
	"--key4", "ALPHA",
}

func TestEncryptCommand(t *testing.T) {
	args := append([]string{"encrypt", "--text", "HELLOWORLD"}, sampleArgs...)
	stdout, _, err := execCLI(args...)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "BSKCYAERUV" {
		t.Errorf("encrypt output = %q, want %q", got, "BSKCYAERUV")
	}
}

func TestEncryptCommand_Trace(t *testing.T) {
	args := append([]string{"encrypt", "--text", "HELLOWORLD", "--trace"}, sampleArgs...)
	stdout, _, err := execCLI(args...)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	for _, layer := range []string{"DKSS:", "NRPE:", "VBMD:", "KDPP:"} {
		if !strings.Contains(stdout, layer) {
			t.Errorf("trace output missing %q:\n%s", layer, stdout)
		}
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if last := lines[len(lines)-1]; last != "BSKCYAERUV" {
		t.Errorf("last line = %q, want ciphertext", last)
	}
}

func TestEncryptCommand_JSON(t *testing.T) {
	args := append([]string{"encrypt", "--text", "HELLOWORLD", "--json"}, sampleArgs...)
	stdout, _, err := execCLI(args...)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	var result aqimc.EncryptResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if result.Ciphertext != "BSKCYAERUV" {
		t.Errorf("Ciphertext = %q, want %q", result.Ciphertext, "BSKCYAERUV")
	}
	if len(result.Trace) != 4 {
		t.Errorf("Trace has %d entries, want 4", len(result.Trace))
	}
}

func TestDecryptCommand(t *testing.T) {
	args := append([]string{"decrypt", "--text", "BSKCYAERUV"}, sampleArgs...)
	stdout, stderr, err := execCLI(args...)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "HELLOWORLD" {
		t.Errorf("decrypt output = %q, want %q", got, "HELLOWORLD")
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDecryptCommand_Warnings(t *testing.T) {
	stdout, stderr, err := execCLI("decrypt", "--text", "AA",
		"--key1", "KEY", "--key2", "KEY", "--key3", "KEY", "--key4", "KEY")
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "GR" {
		t.Errorf("decrypt output = %q, want %q", got, "GR")
	}
	if !strings.Contains(stderr, "no valid preimage") {
		t.Errorf("stderr = %q, want preimage warning", stderr)
	}
}

func TestEncryptCommand_InvalidKey(t *testing.T) {
	args := []string{"encrypt", "--text", "HELLO",
		"--key1", "DELTA", "--key2", "B2D", "--key3", "ALPHA", "--key4", "ALPHA"}
	_, _, err := execCLI(args...)
	if err == nil {
		t.Fatal("expected an error for a key with digits")
	}
	if !strings.Contains(err.Error(), "key2:") {
		t.Errorf("error = %v, want key2 prefix", err)
	}
}

func TestEncryptCommand_MissingFlags(t *testing.T) {
	_, _, err := execCLI("encrypt", "--text", "HELLO")
	if err == nil {
		t.Fatal("expected an error for missing key flags")
	}
	if !strings.Contains(err.Error(), "required flag") {
		t.Errorf("error = %v, want required flag message", err)
	}
}

func TestKeygenCommand(t *testing.T) {
	stdout, _, err := execCLI("keygen", "--length", "8", "--count", "3")
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d keys, want 3", len(lines))
	}
	for _, line := range lines {
		if len(line) != 8 {
			t.Errorf("key %q has length %d, want 8", line, len(line))
		}
		for _, r := range line {
			if r < 'A' || r > 'Z' {
				t.Errorf("key %q contains non-letter %q", line, r)
			}
		}
	}
}

func TestKeygenCommand_Seeded(t *testing.T) {
	first, _, err := execCLI("keygen", "--seed", "correct horse", "--count", "2")
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	second, _, err := execCLI("keygen", "--seed", "correct horse", "--count", "2")
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	if first != second {
		t.Errorf("seeded keygen is not deterministic:\n%s\n%s", first, second)
	}

	keys := strings.Split(strings.TrimSpace(first), "\n")
	if len(keys) != 2 || keys[0] == keys[1] {
		t.Errorf("batch keys should be distinct, got %v", keys)
	}

	other, _, err := execCLI("keygen", "--seed", "battery staple")
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	if strings.TrimSpace(other) == keys[0] {
		t.Error("different seeds produced the same key")
	}
}

func TestKeygenCommand_BadLength(t *testing.T) {
	_, _, err := execCLI("keygen", "--length", "0")
	if err == nil {
		t.Fatal("expected an error for zero length")
	}
}

func TestSelftestCommand(t *testing.T) {
	stdout, _, err := execCLI("selftest")
	if err != nil {
		t.Fatalf("selftest failed: %v", err)
	}
	if !strings.Contains(stdout, "✓ round trip ok") {
		t.Errorf("selftest output = %q, want success marker", stdout)
	}
	if !strings.Contains(stdout, "encrypted: BSKCYAERUV") {
		t.Errorf("selftest output missing reference ciphertext:\n%s", stdout)
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := execCLI("--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(stdout, aqimc.Version) {
		t.Errorf("version output = %q, want %q in it", stdout, aqimc.Version)
	}
}
