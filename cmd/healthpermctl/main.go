// healthpermctl is the operator client of the permission server. Every API
// operation is a subcommand; "token" mints a bearer token locally from the
// server's JWT secret for development setups.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
)

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr, dial: dial}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type dialFunc func(conn connection) (*grpc.ClientConn, error)

type cli struct {
	stdout io.Writer
	stderr io.Writer
	dial   dialFunc
}

// connection holds the flags shared by every remote subcommand.
type connection struct {
	addr    string
	token   string
	tls     bool
	caFile  string
	timeout time.Duration
}

func (c *connection) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.addr, "addr", envOr("HEALTHPERM_ADDR", "localhost:50051"), "server address")
	fs.StringVar(&c.token, "token", os.Getenv("HEALTHPERM_TOKEN"), "bearer token of the caller")
	fs.BoolVar(&c.tls, "tls", false, "connect over TLS")
	fs.StringVar(&c.caFile, "ca-file", "", "PEM bundle trusted for the server certificate (default: system roots)")
	fs.DurationVar(&c.timeout, "timeout", 10*time.Second, "per-call timeout")
}

// clients bundles the typed API clients a subcommand calls.
type clients struct {
	identity     *permapi.IdentityClient
	verification *permapi.VerificationClient
	access       *permapi.AccessClient
	audit        *permapi.AuditClient
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.usage()
		return nil
	}

	cmd, ok := findCommand(args[0])
	if !ok {
		c.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: healthpermctl %s [flags]\n\n%s\n\nFlags:\n%s", cmd.name, cmd.summary, fs.FlagUsages())
	}

	var conn connection
	if !cmd.local {
		conn.addFlags(fs)
	}
	call := cmd.setup(fs)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if err := requireFlags(fs, cmd.required...); err != nil {
		return err
	}

	var cl clients
	if !cmd.local {
		cc, err := c.dial(conn)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", conn.addr, err)
		}
		defer cc.Close()

		cl = clients{
			identity:     permapi.NewIdentityClient(cc),
			verification: permapi.NewVerificationClient(cc),
			access:       permapi.NewAccessClient(cc),
			audit:        permapi.NewAuditClient(cc),
		}

		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conn.timeout)
		defer cancel()
		if conn.token != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+conn.token)
		}
	}

	result, err := call(ctx, cl)
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return err
	}
	return c.print(result)
}

func (c *cli) print(result any) error {
	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(c.stdout, s)
		return err
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (c *cli) usage() {
	var b strings.Builder
	b.WriteString("Usage: healthpermctl <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %-22s %s\n", cmd.name, cmd.summary)
	}
	b.WriteString("\nRun 'healthpermctl <command> --help' for the flags of a command.\n")
	fmt.Fprint(c.stderr, b.String())
}

func requireFlags(fs *pflag.FlagSet, names ...string) error {
	var missing []string
	for _, name := range names {
		if !fs.Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))
	}
	return nil
}

func dial(conn connection) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if conn.tls {
		tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
		if conn.caFile != "" {
			pem, err := os.ReadFile(conn.caFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA file: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates found in %s", conn.caFile)
			}
			tlsConfig.RootCAs = pool
		}
		creds = credentials.NewTLS(tlsConfig)
	}
	return grpc.NewClient(conn.addr, grpc.WithTransportCredentials(creds))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
