// Package commands provides the sub-command implementations of the srp6a tool.
package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/internal/registry"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath    *string
	hashAlgorithm *string
	primeGroup    *string
	kdfType       *string
	logLevel      *string
	output        *string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath:    fs.String("config", "", "Path to config file (default <UserConfigDir>/srp6a/config.yaml)"),
		hashAlgorithm: fs.String("hash", "", "Hash algorithm, e.g. SHA-256 (overrides config)"),
		primeGroup:    fs.String("group", "", "Prime group size in bits, e.g. 2048 (overrides config)"),
		kdfType:       fs.String("kdf", "", "Private key derivation: rfc5054 or pbkdf2 (overrides config)"),
		logLevel:      fs.String("log-level", "", "Log level: debug, info, warn or error (overrides config)"),
		output:        fs.String("output", "yaml", "Output format (yaml or json)"),
	}
}

// environment is everything a command needs once flags and config are resolved.
type environment struct {
	cfg      *config.Config
	params   *srp.Params
	deriver  srp.PrivateKeyDeriver
	logger   *logging.Logger
	format   output.Format
	out      io.Writer
	registry func() (*registry.Store, error)
}

func (f *commonFlags) setup(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(*f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ApplyFlags(*f.hashAlgorithm, *f.primeGroup, *f.kdfType, *f.logLevel); err != nil {
		return nil, err
	}
	if clicontext.Debug() {
		cfg.Logging.Level = string(logging.LevelDebug)
	}

	format, err := output.ParseFormat(*f.output)
	if err != nil {
		return nil, err
	}

	return newEnvironment(ctx, cfg, format, os.Stdout)
}

func newEnvironment(ctx context.Context, cfg *config.Config, format output.Format, out io.Writer) (*environment, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logFormat, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, logFormat)

	params, err := cfg.Params(ctx, srp.NewSystemProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SRP parameters: %w", err)
	}

	logger.Debug("SRP parameters ready", map[string]any{
		"hash_algorithm": string(params.HashAlgorithm()),
		"prime_group":    string(params.PrimeGroup()),
		"kdf":            cfg.KDF.Type,
	})

	return &environment{
		cfg:      cfg,
		params:   params,
		deriver:  cfg.Deriver(params),
		logger:   logger,
		format:   format,
		out:      out,
		registry: registry.NewDefaultStore,
	}, nil
}

func (e *environment) server() *srp.Server {
	return srp.NewServer(e.params, srp.WithLogger(e.logger))
}

func (e *environment) client() *srp.Client {
	return srp.NewClient(e.params, srp.WithLogger(e.logger))
}

func (e *environment) print(data any) error {
	return output.Write(e.out, data, e.format)
}

// lookupRegistration loads a stored registration for username. Entries
// created under a different hash, group or private key derivation than the
// active configuration are rejected as a configuration error.
func (e *environment) lookupRegistration(username string) (protocol.Registration, error) {
	store, err := e.registry()
	if err != nil {
		return protocol.Registration{}, fmt.Errorf("failed to open registration store: %w", err)
	}
	reg, err := store.Load(username)
	if err != nil {
		return protocol.Registration{}, err
	}
	if err := e.checkRegistration(reg); err != nil {
		return protocol.Registration{}, err
	}
	return reg, nil
}

// kdfIterations is the PBKDF2 iteration count in effect, or 0 for rfc5054.
func (e *environment) kdfIterations() int {
	if e.cfg.KDF.Type != config.KDFPBKDF2 {
		return 0
	}
	if e.cfg.KDF.Iterations == 0 {
		return srp.DefaultPBKDF2Iterations
	}
	return e.cfg.KDF.Iterations
}

func (e *environment) checkRegistration(reg protocol.Registration) error {
	var mismatches []string
	if got, want := reg.HashAlgorithm, string(e.params.HashAlgorithm()); got != want {
		mismatches = append(mismatches, fmt.Sprintf("hash algorithm %s (configured %s)", got, want))
	}
	if got, want := reg.PrimeGroup, string(e.params.PrimeGroup()); got != want {
		mismatches = append(mismatches, fmt.Sprintf("prime group %s (configured %s)", got, want))
	}
	if got, want := reg.KDF, e.cfg.KDF.Type; got != want {
		mismatches = append(mismatches, fmt.Sprintf("kdf %s (configured %s)", got, want))
	} else if got, want := reg.Iterations, e.kdfIterations(); got != want {
		mismatches = append(mismatches, fmt.Sprintf("kdf iterations %d (configured %d)", got, want))
	}
	if len(mismatches) > 0 {
		return protocol.NewConfigurationError(fmt.Sprintf("registration for %q was created with %s",
			reg.Username, strings.Join(mismatches, ", ")))
	}
	return nil
}

// requireFlags fails when any named flag value is empty.
func requireFlags(values map[string]string) error {
	var missing []string
	for name, v := range values {
		if v == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

// promptUsername prompts the user to enter their username.
func promptUsername() string {
	fmt.Fprintf(os.Stderr, "Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, _ := reader.ReadString('\n')
	return strings.TrimSpace(username)
}

// promptPassword prompts for a password with hidden input.
func promptPassword(prompt string) string {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintf(os.Stderr, "\n")
	if err != nil {
		exitWithError("failed to read password: %v", err)
	}
	return string(password)
}

// exitWithError prints an error message to stderr and exits with status 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
