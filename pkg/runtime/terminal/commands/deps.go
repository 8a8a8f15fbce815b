package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/vspc-reporter/pkg/services/auth"
	"github.com/de-tools/vspc-reporter/pkg/services/registry"
	"github.com/de-tools/vspc-reporter/pkg/services/vspc"
)

// AuthFunc obtains console credentials. Injected so command tests can
// bypass the browser.
type AuthFunc func(ctx context.Context, baseURL, username, password string) (*auth.Credentials, error)

// Deps are the external collaborators of the commands.
type Deps struct {
	Authenticate AuthFunc
	NewClient    vspc.Factory
	Output       io.Writer
}

// connectionFlags is the credential flag set shared by the commands.
// Resolution order per value: flag, then environment, then profile.
type connectionFlags struct {
	url      string
	login    string
	password string
	profile  string
	cfgPath  string
	verbose  bool
}

func (cf *connectionFlags) register(cmd *cobra.Command) {
	home, _ := os.UserHomeDir()
	defaultCfg := fmt.Sprintf("%s/.vspccfg", home)

	cmd.Flags().StringVar(&cf.url, "url", "", "Console URL (or VSPC_URL)")
	cmd.Flags().StringVar(&cf.login, "login", "", "Console username (or VSPC_LOGIN)")
	cmd.Flags().StringVar(&cf.password, "password", "", "Console password (or VSPC_PASSWORD)")
	cmd.Flags().StringVar(&cf.profile, "profile", "", "Named profile from the config file")
	cmd.Flags().StringVar(&cf.cfgPath, "config", defaultCfg, "Path to the profile config file")
	cmd.Flags().BoolVarP(&cf.verbose, "verbose", "v", false, "Show detailed debug output")
}

// resolve fills missing values from the environment and, when a profile
// is named, from the profile registry. A .env file is honored if present.
func (cf *connectionFlags) resolve() (url, login, password string, err error) {
	_ = godotenv.Load()

	url, login, password = cf.url, cf.login, cf.password
	if url == "" {
		url = os.Getenv("VSPC_URL")
	}
	if login == "" {
		login = os.Getenv("VSPC_LOGIN")
	}
	if password == "" {
		password = os.Getenv("VSPC_PASSWORD")
	}

	if cf.profile != "" {
		reg, err := registry.NewProfileRegistry(cf.cfgPath)
		if err != nil {
			return "", "", "", fmt.Errorf("failed to load profile config: %w", err)
		}
		profile, err := reg.GetProfile(cf.profile)
		if err != nil {
			return "", "", "", err
		}
		if url == "" {
			url = profile.URL
		}
		if login == "" {
			login = profile.Login
		}
		if password == "" {
			password = profile.Password
		}
	}

	if url == "" || login == "" || password == "" {
		return "", "", "", fmt.Errorf("url, login and password are required (flags, environment or --profile)")
	}

	return url, login, password, nil
}

// newLogger builds the run logger and attaches it to the context.
func (cf *connectionFlags) newLogger(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if cf.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
