package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server_url: https://cloud.example.com
username: alice
address_book: Contacts
threshold: 90
network:
  timeout_secs: 60
  max_retries: 3
  retry_delay_secs: 5
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.ServerURL != "https://cloud.example.com" {
		t.Errorf("ServerURL = %q", f.ServerURL)
	}
	if f.Username != "alice" {
		t.Errorf("Username = %q", f.Username)
	}
	if f.AddressBook != "Contacts" {
		t.Errorf("AddressBook = %q", f.AddressBook)
	}
	if f.Threshold == nil || *f.Threshold != 90 {
		t.Errorf("Threshold = %v, want 90", f.Threshold)
	}
	if f.Network.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d", f.Network.TimeoutSecs)
	}
	if f.Network.MaxRetries == nil || *f.Network.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", f.Network.MaxRetries)
	}
}

func TestLoadPartialFile(t *testing.T) {
	f, err := Load(writeConfig(t, "server_url: https://cloud.example.com\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Threshold != nil {
		t.Errorf("Threshold = %v, want nil for an unset field", f.Threshold)
	}
	if f.Network.MaxRetries != nil {
		t.Errorf("MaxRetries = %v, want nil for an unset field", f.Network.MaxRetries)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	_, err := Load(writeConfig(t, "threshold: 150\n"))
	if err == nil {
		t.Error("out-of-range threshold should fail")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server_url: [unterminated\n"))
	if err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestResolveConnectionPrecedence(t *testing.T) {
	f := &File{
		ServerURL:   "https://file.example.com",
		Username:    "file-user",
		AddressBook: "FileBook",
	}

	t.Run("file only", func(t *testing.T) {
		conn := ResolveConnection(f, "", "", "")
		if conn.ServerURL != "https://file.example.com" || conn.Username != "file-user" {
			t.Errorf("conn = %+v", conn)
		}
		if conn.AddressBook != "FileBook" {
			t.Errorf("AddressBook = %q", conn.AddressBook)
		}
	})

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("NCDEDUP_SERVER_URL", "https://env.example.com")
		t.Setenv("NCDEDUP_USERNAME", "env-user")
		t.Setenv("NCDEDUP_ADDRESSBOOK", "EnvBook")
		t.Setenv("NCDEDUP_PASSWORD", "env-secret")

		conn := ResolveConnection(f, "", "", "")
		if conn.ServerURL != "https://env.example.com" || conn.Username != "env-user" {
			t.Errorf("conn = %+v", conn)
		}
		if conn.AddressBook != "EnvBook" {
			t.Errorf("AddressBook = %q", conn.AddressBook)
		}
		if conn.Password != "env-secret" {
			t.Errorf("Password = %q", conn.Password)
		}
	})

	t.Run("arguments beat environment", func(t *testing.T) {
		t.Setenv("NCDEDUP_SERVER_URL", "https://env.example.com")
		t.Setenv("NCDEDUP_USERNAME", "env-user")

		conn := ResolveConnection(f, "https://arg.example.com", "arg-user", "ArgBook")
		if conn.ServerURL != "https://arg.example.com" || conn.Username != "arg-user" {
			t.Errorf("conn = %+v", conn)
		}
		if conn.AddressBook != "ArgBook" {
			t.Errorf("AddressBook = %q", conn.AddressBook)
		}
	})
}
