package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, ".vellum.lock", nil)

	unlock, err := client.Lock()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	// Verify lock file exists
	lockPath := filepath.Join(tmpDir, ".vellum.lock")
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	unlock()

	// Verify lock file removed
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}
}

func TestClient_Init(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, ".vellum.lock", nil)

	if client.IsRepo() {
		t.Error("IsRepo() true before init")
	}

	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory not created")
	}
	if !client.IsRepo() {
		t.Error("IsRepo() false after init")
	}
}

func TestClient_AddCommitStatus(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, ".vellum.lock", nil)
	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	// Identity for clean CI environments.
	client.Run("config", "user.name", "Test Bot")
	client.Run("config", "user.email", "bot@example.com")

	if err := os.WriteFile(filepath.Join(tmpDir, "note.txt"), []byte("title: hi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status == "" {
		t.Fatal("Status empty with an untracked file present")
	}

	if err := client.Add("note.txt"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := client.Commit("docs(note): update"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != "" {
		t.Errorf("Status not clean after commit: %q", status)
	}
}
