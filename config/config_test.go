// Environment file for getting variables
// Reads from the config/environments/dev.yaml file by default
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_ReadConfig(t *testing.T) {
	t.Run("development config parses", func(t *testing.T) {
		got, err := ReadConfig("")
		if err != nil {
			t.Fatalf("ReadConfig() error = %v", err)
		}
		if got.Server.APIPort != "8081" {
			t.Errorf("ReadConfig() apiport = %s, want 8081", got.Server.APIPort)
		}
		if got.Server.DefaultCheckoutMinutes != 60 {
			t.Errorf("ReadConfig() default_checkout_minutes = %d, want 60", got.Server.DefaultCheckoutMinutes)
		}
	})
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.yaml")
		contents := "server:\n  agencyname: \"Test Agency\"\n  default_checkout_minutes: 15\nsmtp:\n  port: 2525\n"
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadConfig(path)
		if err != nil {
			t.Fatalf("ReadConfig() error = %v", err)
		}
		if got.Server.AgencyName != "Test Agency" {
			t.Errorf("ReadConfig() agencyname = %s, want Test Agency", got.Server.AgencyName)
		}
		if got.SMTP.Port != 2525 {
			t.Errorf("ReadConfig() smtp port = %d, want 2525", got.SMTP.Port)
		}
	})
	t.Run("missing file errors", func(t *testing.T) {
		if _, err := ReadConfig("environments/nosuch.yaml"); err == nil {
			t.Error("ReadConfig() expected an error for a missing file")
		}
	})
}
