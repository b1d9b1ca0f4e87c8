package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

// Conf locates the external batch engine. Command bodies stay fixed per
// application; only the launcher binary and the examples jar move.
type Conf struct {
	Launcher string `yaml:"launcher"`
	Jar      string `yaml:"jar"`
}

var defaultEngineConf = `
launcher: "hadoop"
jar: "/opt/hadoop/share/hadoop/mapreduce/hadoop-mapreduce-examples-3.4.1.jar"
`

// LoadConf returns the engine configuration, overridden by the YAML file
// at confPath when one is given.
func LoadConf(confPath string) (*Conf, error) {
	confStr := defaultEngineConf
	if confPath != "" {
		dat, err := os.ReadFile(confPath)
		if err != nil {
			return nil, fmt.Errorf("reading engine configuration: %v", err)
		}
		confStr = string(dat)
	}

	conf := &Conf{}
	if err := yaml.Unmarshal([]byte(confStr), conf); err != nil {
		return nil, fmt.Errorf("parsing engine configuration: %v", err)
	}
	if conf.Launcher == "" || conf.Jar == "" {
		return nil, fmt.Errorf("engine configuration must set launcher and jar")
	}
	return conf, nil
}

// NotFoundError reports that the engine launcher binary is missing.
type NotFoundError struct {
	Launcher string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("engine launcher %q not found", e.Launcher)
}

// ExitError reports a non-zero engine exit with its captured stderr.
type ExitError struct {
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("engine exited: %v", e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Invoke runs the engine command for job and blocks until it exits.
// Stdout is discarded; stderr is captured for diagnostics on failure.
func Invoke(conf *Conf, tmpl Template, job trace.Job) error {
	cmd := exec.Command(conf.Launcher, tmpl.Args(conf, job)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &NotFoundError{Launcher: conf.Launcher}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Stderr: stderr.String(), Err: err}
	}
	return err
}

// CommandLine renders the full command for logging.
func CommandLine(conf *Conf, tmpl Template, job trace.Job) string {
	return strings.Join(append([]string{conf.Launcher}, tmpl.Args(conf, job)...), " ")
}
