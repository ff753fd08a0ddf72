package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/token"
)

type callFunc func(ctx context.Context, c clients) (any, error)

type command struct {
	name     string
	summary  string
	required []string

	// local commands never dial the server.
	local bool

	// setup registers the command flags and returns the call bound to them.
	setup func(fs *pflag.FlagSet) callFunc
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

var commands = []command{
	{
		name:     "token",
		summary:  "mint a bearer token for an identity using the server JWT secret",
		required: []string{"identity"},
		local:    true,
		setup: func(fs *pflag.FlagSet) callFunc {
			identity := fs.String("identity", "", "identity placed in the token subject")
			secret := fs.String("secret", os.Getenv("JWT_SECRET"), "JWT signing secret (default $JWT_SECRET)")
			ttl := fs.Duration("ttl", 15*time.Minute, "token lifetime")
			return func(context.Context, clients) (any, error) {
				return token.NewJWT(*secret, *ttl).GenerateAccessToken(model.Identity(*identity))
			}
		},
	},

	{
		name:    "onboard-user",
		summary: "register the caller as a user",
		setup: func(*pflag.FlagSet) callFunc {
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.OnboardUser(ctx, &permapi.OnboardUserRequest{})
			}
		},
	},
	{
		name:     "link-device",
		summary:  "link a device to the caller",
		required: []string{"device"},
		setup: func(fs *pflag.FlagSet) callFunc {
			device := fs.String("device", "", "device id")
			deviceType := fs.String("type", "", "device type")
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.LinkDevice(ctx, &permapi.LinkDeviceRequest{DeviceID: *device, DeviceType: *deviceType})
			}
		},
	},
	{
		name:     "unlink-device",
		summary:  "unlink a device from the caller",
		required: []string{"device"},
		setup: func(fs *pflag.FlagSet) callFunc {
			device := fs.String("device", "", "device id")
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.UnlinkDevice(ctx, &permapi.UnlinkDeviceRequest{DeviceID: *device})
			}
		},
	},
	{
		name:     "is-registered-user",
		summary:  "report whether an identity is a registered user",
		required: []string{"identity"},
		setup: func(fs *pflag.FlagSet) callFunc {
			identity := fs.String("identity", "", "identity to look up")
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.IsRegisteredUser(ctx, &permapi.IsRegisteredUserRequest{Identity: *identity})
			}
		},
	},
	{
		name:     "is-registered-device",
		summary:  "report whether a device is linked to a user",
		required: []string{"user", "device"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "device owner")
			device := fs.String("device", "", "device id")
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.IsRegisteredDevice(ctx, &permapi.IsRegisteredDeviceRequest{User: *user, DeviceID: *device})
			}
		},
	},
	{
		name:     "get-device",
		summary:  "show a device record",
		required: []string{"user", "device"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "device owner")
			device := fs.String("device", "", "device id")
			return func(ctx context.Context, c clients) (any, error) {
				return c.identity.GetDevice(ctx, &permapi.GetDeviceRequest{User: *user, DeviceID: *device})
			}
		},
	},

	{
		name:     "register-entity",
		summary:  "verify a data consumer (registrar only)",
		required: []string{"consumer"},
		setup: func(fs *pflag.FlagSet) callFunc {
			consumer := fs.String("consumer", "", "consumer identity")
			consumerType := fs.String("type", "", "consumer type")
			return func(ctx context.Context, c clients) (any, error) {
				return c.verification.RegisterEntity(ctx, &permapi.RegisterEntityRequest{Consumer: *consumer, ConsumerType: *consumerType})
			}
		},
	},
	{
		name:     "is-verified-entity",
		summary:  "report whether a consumer is verified",
		required: []string{"consumer"},
		setup: func(fs *pflag.FlagSet) callFunc {
			consumer := fs.String("consumer", "", "consumer identity")
			return func(ctx context.Context, c clients) (any, error) {
				return c.verification.IsVerifiedEntity(ctx, &permapi.IsVerifiedEntityRequest{Consumer: *consumer})
			}
		},
	},

	{
		name:     "authorize-access",
		summary:  "grant a consumer access to a category of the caller's data",
		required: []string{"consumer", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			consumer := fs.String("consumer", "", "consumer identity")
			category := fs.String("category", "", "data category")
			expiry := fs.Uint64("expiry", 0, "logical time the grant lapses at (default: never)")
			return func(ctx context.Context, c clients) (any, error) {
				req := &permapi.AuthorizeAccessRequest{Consumer: *consumer, Category: *category}
				if fs.Changed("expiry") {
					req.Expiry = expiry
				}
				return c.access.AuthorizeAccess(ctx, req)
			}
		},
	},
	{
		name:     "revoke-access",
		summary:  "revoke a consumer's access to a category of the caller's data",
		required: []string{"consumer", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			consumer := fs.String("consumer", "", "consumer identity")
			category := fs.String("category", "", "data category")
			return func(ctx context.Context, c clients) (any, error) {
				return c.access.RevokeAccess(ctx, &permapi.RevokeAccessRequest{Consumer: *consumer, Category: *category})
			}
		},
	},
	{
		name:     "check-access",
		summary:  "report whether a consumer currently holds access",
		required: []string{"user", "consumer", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "data owner")
			consumer := fs.String("consumer", "", "consumer identity")
			category := fs.String("category", "", "data category")
			return func(ctx context.Context, c clients) (any, error) {
				return c.access.CheckAccess(ctx, &permapi.CheckAccessRequest{User: *user, Consumer: *consumer, Category: *category})
			}
		},
	},
	{
		name:     "get-grant",
		summary:  "show the stored grant record",
		required: []string{"user", "consumer", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "data owner")
			consumer := fs.String("consumer", "", "consumer identity")
			category := fs.String("category", "", "data category")
			return func(ctx context.Context, c clients) (any, error) {
				return c.access.GetGrant(ctx, &permapi.GetGrantRequest{User: *user, Consumer: *consumer, Category: *category})
			}
		},
	},

	{
		name:     "log-access",
		summary:  "append an access record to the audit log (caller must be the consumer or the registrar)",
		required: []string{"user", "consumer", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "data owner")
			consumer := fs.String("consumer", "", "consumer identity")
			category := fs.String("category", "", "data category")
			purpose := fs.String("purpose", "", "stated purpose")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.LogAccess(ctx, &permapi.LogAccessRequest{User: *user, Consumer: *consumer, Category: *category, Purpose: *purpose})
			}
		},
	},
	{
		name:     "request-access",
		summary:  "read a category as the caller, logged only when access is held",
		required: []string{"user", "category"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "data owner")
			category := fs.String("category", "", "data category")
			purpose := fs.String("purpose", "", "stated purpose")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.RequestAccess(ctx, &permapi.RequestAccessRequest{User: *user, Category: *category, Purpose: *purpose})
			}
		},
	},
	{
		name:     "get-audit-entry",
		summary:  "show one audit entry",
		required: []string{"id"},
		setup: func(fs *pflag.FlagSet) callFunc {
			id := fs.Uint64("id", 0, "access id")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.GetAuditEntry(ctx, &permapi.GetAuditEntryRequest{AccessID: *id})
			}
		},
	},
	{
		name:    "log-counter",
		summary: "show the next access id",
		setup: func(*pflag.FlagSet) callFunc {
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.GetLogCounter(ctx, &permapi.GetLogCounterRequest{})
			}
		},
	},
	{
		name:     "list-user-access",
		summary:  "list the access ids recorded for a user",
		required: []string{"user"},
		setup: func(fs *pflag.FlagSet) callFunc {
			user := fs.String("user", "", "data owner")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.ListUserAccess(ctx, &permapi.ListUserAccessRequest{User: *user})
			}
		},
	},
	{
		name:     "verify-chain",
		summary:  "check the audit hash chain over [from, to)",
		required: []string{"to"},
		setup: func(fs *pflag.FlagSet) callFunc {
			from := fs.Uint64("from", 0, "first access id")
			to := fs.Uint64("to", 0, "access id after the last one checked")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.VerifyChain(ctx, &permapi.VerifyChainRequest{From: *from, To: *to})
			}
		},
	},
	{
		name:     "export-range",
		summary:  "archive audit entries [from, to) to object storage (registrar only)",
		required: []string{"to"},
		setup: func(fs *pflag.FlagSet) callFunc {
			from := fs.Uint64("from", 0, "first access id")
			to := fs.Uint64("to", 0, "access id after the last one exported")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.ExportRange(ctx, &permapi.ExportRangeRequest{From: *from, To: *to})
			}
		},
	},
	{
		name:     "verify-archive",
		summary:  "check the hash links of a stored archive (registrar only)",
		required: []string{"key"},
		setup: func(fs *pflag.FlagSet) callFunc {
			key := fs.String("key", "", "archive object key")
			return func(ctx context.Context, c clients) (any, error) {
				return c.audit.VerifyArchive(ctx, &permapi.VerifyArchiveRequest{Key: *key})
			}
		},
	},
}
