package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/Flyrell/shopsum/internal/config"
	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/mattn/go-isatty"
)

// environment bundles the process-level side effects of the commands so tests
// can point them at temp directories and fake variables.
type environment struct {
	homeDir   func() (string, error)
	workDir   func() (string, error)
	lookupEnv func(key string) (string, bool)
	environ   func() []string
}

func defaultEnvironment() environment {
	return environment{
		homeDir:   os.UserHomeDir,
		workDir:   os.Getwd,
		lookupEnv: os.LookupEnv,
		environ:   os.Environ,
	}
}

// workspace is the resolved configuration and secret stores of one command run.
type workspace struct {
	homeDir string
	cfg     *config.Config
	files   *secret.FileStore
	dotenv  secret.MapStore
	secrets secret.Chain
}

// load reads the config and opens the secret stores. Secrets resolve from the
// process environment first, then ./.env, then ~/.shopsum/secrets.json.
func (e environment) load() (*workspace, error) {
	homeDir, err := e.homeDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	dotenv := secret.MapStore{}
	if wd, err := e.workDir(); err == nil {
		dotenv, err = secret.LoadDotenv(filepath.Join(wd, secret.DotenvFile))
		if err != nil {
			return nil, err
		}
	}

	files := secret.NewFileStore(homeDir)
	return &workspace{
		homeDir: homeDir,
		cfg:     cfg,
		files:   files,
		dotenv:  dotenv,
		secrets: secret.Chain{secret.EnvStore{Lookup: e.lookupEnv}, dotenv, files},
	}, nil
}

// newLogger returns a logger writing to w when enabled, otherwise discarding.
func newLogger(w io.Writer, enabled bool) *log.Logger {
	if !enabled {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "", log.LstdFlags)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
