package engine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

func TestTemplateRegistry(t *testing.T) {
	for _, app := range []string{"pi", "wordcount", "grep", "terasort"} {
		tmpl, found := GetTemplate(app)
		if !found {
			t.Fatalf("No template registered for %q", app)
		}
		if tmpl.Name() != app {
			t.Errorf("Wrong template name, expected %q, got %q", app, tmpl.Name())
		}
	}

	// Unmapped apps fall back to simulation at replay time.
	if _, found := GetTemplate("rodinia_kmeans"); found {
		t.Errorf("Expected no template for rodinia_kmeans")
	}
}

func TestPiTemplateArgs(t *testing.T) {
	conf := &Conf{Launcher: "hadoop", Jar: "examples.jar"}
	tmpl, _ := GetTemplate("pi")

	args := tmpl.Args(conf, trace.Job{ID: 3, TaskCount: 5})
	expected := []string{"jar", "examples.jar", "pi", "5", "1000"}
	if !reflect.DeepEqual(expected, args) {
		t.Errorf("Wrong args, expected %v, got %v", expected, args)
	}
}

func TestOutputPathTemplates(t *testing.T) {
	conf := &Conf{Launcher: "hadoop", Jar: "examples.jar"}
	job := trace.Job{ID: 7, TaskCount: 3}

	cases := []struct {
		app      string
		expected []string
	}{
		{"wordcount", []string{"jar", "examples.jar", "wordcount", "/inputs/wordcount_data", "/outputs/wordcount_7"}},
		{"grep", []string{"jar", "examples.jar", "grep", "/inputs/grep_data", "/outputs/grep_7", "Tracie"}},
		{"terasort", []string{"jar", "examples.jar", "teragen", "3000", "/outputs/teragen_7"}},
	}
	for _, c := range cases {
		t.Run(c.app, func(t *testing.T) {
			tmpl, _ := GetTemplate(c.app)
			if args := tmpl.Args(conf, job); !reflect.DeepEqual(c.expected, args) {
				t.Errorf("Wrong args, expected %v, got %v", c.expected, args)
			}
		})
	}
}

func TestLoadConfDefault(t *testing.T) {
	conf, err := LoadConf("")
	if err != nil {
		t.Fatalf("Failed to load default conf: %v", err)
	}
	if conf.Launcher != "hadoop" || !strings.Contains(conf.Jar, "hadoop-mapreduce-examples") {
		t.Errorf("Wrong default conf: %+v", conf)
	}
}

func TestLoadConfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := "launcher: \"/usr/local/bin/hadoop\"\njar: \"/srv/examples.jar\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write conf: %v", err)
	}

	conf, err := LoadConf(path)
	if err != nil {
		t.Fatalf("Failed to load conf: %v", err)
	}
	if conf.Launcher != "/usr/local/bin/hadoop" || conf.Jar != "/srv/examples.jar" {
		t.Errorf("Wrong conf: %+v", conf)
	}
}

func TestLoadConfMissingFile(t *testing.T) {
	if _, err := LoadConf(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Expected load to fail for a missing file")
	}
}

func TestLoadConfIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("launcher: \"hadoop\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write conf: %v", err)
	}
	if _, err := LoadConf(path); err == nil {
		t.Errorf("Expected load to fail without a jar path")
	}
}

// stubTemplate lets tests drive the launcher with arbitrary arguments.
type stubTemplate struct {
	args []string
}

func (s stubTemplate) Name() string { return "stub" }

func (s stubTemplate) Args(*Conf, trace.Job) []string { return s.args }

func TestInvokeSuccess(t *testing.T) {
	conf := &Conf{Launcher: "sh", Jar: "unused"}
	if err := Invoke(conf, stubTemplate{args: []string{"-c", "exit 0"}}, trace.Job{}); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
}

func TestInvokeExitError(t *testing.T) {
	conf := &Conf{Launcher: "sh", Jar: "unused"}
	err := Invoke(conf, stubTemplate{args: []string{"-c", "echo boom >&2; exit 3"}}, trace.Job{})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected ExitError, got %v", err)
	}
	if !strings.Contains(exitErr.Stderr, "boom") {
		t.Errorf("Expected captured stderr, got %q", exitErr.Stderr)
	}
}

func TestInvokeNotFound(t *testing.T) {
	conf := &Conf{Launcher: "tracie-no-such-launcher", Jar: "unused"}
	err := Invoke(conf, stubTemplate{args: []string{"version"}}, trace.Job{})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if notFound.Launcher != "tracie-no-such-launcher" {
		t.Errorf("Wrong launcher in error: %q", notFound.Launcher)
	}
}
