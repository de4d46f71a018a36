// ABOUTME: Tests for the whoami command
// ABOUTME: Verifies session resolution, output formatting, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWhoami_SignedIn(t *testing.T) {
	signIn(t)
	backend(t, testUser, nil)

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"Jane Doe", "jdoe@example.com", "USER"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	t.Setenv("HELPDESK_CONFIG_DIR", t.TempDir())
	backend(t, testUser, nil)

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not signed in")) {
		t.Errorf("expected sign-in guidance, got:\n%s", buf.String())
	}
}

func TestWhoami_JSON(t *testing.T) {
	signIn(t)
	backend(t, testAdmin, nil)

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["username"] != "root" {
		t.Errorf("expected username in JSON, got %v", parsed["username"])
	}
}
