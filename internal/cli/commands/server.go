package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// ServerEphemeralCommand implements the 'server-ephemeral' command (server step 1).
type ServerEphemeralCommand struct{}

// NewServerEphemeralCommand creates a new server-ephemeral command instance.
func NewServerEphemeralCommand() *ServerEphemeralCommand {
	return &ServerEphemeralCommand{}
}

// Execute runs the server-ephemeral command with the provided arguments.
func (c *ServerEphemeralCommand) Execute(args []string) {
	fs := flag.NewFlagSet("server-ephemeral", flag.ExitOnError)
	common := addCommonFlags(fs)

	verifier := fs.String("verifier", "", "Password verifier v (hex)")
	username := fs.String("username", "", "Look up the verifier in the registration store instead")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a server-ephemeral [flags]

Generate the server's ephemeral key pair (b, B) for one login attempt.
Send B and the salt to the client; keep b secret for server-session.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  srp6a server-ephemeral --verifier 7e273de8...
  srp6a server-ephemeral --username alice
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	ctx := context.Background()
	env, err := common.setup(ctx)
	if err != nil {
		exitWithError("%v", err)
	}

	eph, err := c.run(env, *verifier, *username)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := env.print(eph); err != nil {
		exitWithError("%v", err)
	}
}

func (c *ServerEphemeralCommand) run(env *environment, verifier, username string) (protocol.Ephemeral, error) {
	if verifier == "" && username != "" {
		reg, err := env.lookupRegistration(username)
		if err != nil {
			return protocol.Ephemeral{}, err
		}
		verifier = reg.Verifier
	}
	if err := requireFlags(map[string]string{"verifier": verifier}); err != nil {
		return protocol.Ephemeral{}, err
	}

	eph, err := env.server().GenerateEphemeral(verifier)
	if err != nil {
		return protocol.Ephemeral{}, fmt.Errorf("failed to generate server ephemeral: %w", err)
	}
	return eph, nil
}

// ServerSessionCommand implements the 'server-session' command (server step 2).
type ServerSessionCommand struct{}

// NewServerSessionCommand creates a new server-session command instance.
func NewServerSessionCommand() *ServerSessionCommand {
	return &ServerSessionCommand{}
}

// serverSessionInput holds the values the server received or stored.
type serverSessionInput struct {
	secret       string
	clientPublic string
	salt         string
	username     string
	verifier     string
	proof        string
}

// Execute runs the server-session command with the provided arguments.
func (c *ServerSessionCommand) Execute(args []string) {
	fs := flag.NewFlagSet("server-session", flag.ExitOnError)
	common := addCommonFlags(fs)

	var in serverSessionInput
	fs.StringVar(&in.secret, "secret", "", "Server ephemeral secret b (hex) from server-ephemeral")
	fs.StringVar(&in.clientPublic, "client-public", "", "Client public ephemeral A (hex)")
	fs.StringVar(&in.proof, "proof", "", "Client session proof M1 (hex)")
	fs.StringVar(&in.username, "username", "", "Username")
	fs.StringVar(&in.salt, "salt", "", "Salt (hex); looked up by username if omitted")
	fs.StringVar(&in.verifier, "verifier", "", "Verifier (hex); looked up by username if omitted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a server-session [flags]

Verify the client's proof M1 and derive the shared session key K.
On success prints K and the server proof M2 to send back to the client.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  srp6a server-session --secret <b> --client-public <A> --proof <M1> --username alice
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	ctx := context.Background()
	env, err := common.setup(ctx)
	if err != nil {
		exitWithError("%v", err)
	}

	session, err := c.run(ctx, env, in)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := env.print(session); err != nil {
		exitWithError("%v", err)
	}
}

func (c *ServerSessionCommand) run(ctx context.Context, env *environment, in serverSessionInput) (protocol.Session, error) {
	if (in.salt == "" || in.verifier == "") && in.username != "" {
		reg, err := env.lookupRegistration(in.username)
		if err != nil {
			return protocol.Session{}, err
		}
		if in.salt == "" {
			in.salt = reg.Salt
		}
		if in.verifier == "" {
			in.verifier = reg.Verifier
		}
	}

	if err := requireFlags(map[string]string{
		"secret":        in.secret,
		"client-public": in.clientPublic,
		"proof":         in.proof,
		"username":      in.username,
		"salt":          in.salt,
		"verifier":      in.verifier,
	}); err != nil {
		return protocol.Session{}, err
	}

	session, err := env.server().DeriveSession(ctx, in.secret, in.clientPublic, in.salt, in.username, in.verifier, in.proof)
	if err != nil {
		return protocol.Session{}, fmt.Errorf("server session failed: %w", err)
	}
	return session, nil
}
