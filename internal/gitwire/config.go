package gitwire

import "context"

// UserIdentity returns the configured git user in "Name <email>" format, or
// "" if unconfigured.
func (g *Git) UserIdentity(ctx context.Context) string {
	name, _ := g.Run(ctx, "config", "user.name")
	email, _ := g.Run(ctx, "config", "user.email")
	switch {
	case name != "" && email != "":
		return name + " <" + email + ">"
	case name != "":
		return name
	case email != "":
		return email
	default:
		return ""
	}
}

// ConfigGet reads a git config value.
func (g *Git) ConfigGet(ctx context.Context, key string) (string, error) {
	return g.Run(ctx, "config", key)
}

// ConfigSet writes a git config value.
func (g *Git) ConfigSet(ctx context.Context, key, value string) error {
	return g.RunSilent(ctx, "config", key, value)
}

// RemoteURL returns the URL configured for the given remote, e.g. "origin".
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	return g.Run(ctx, "remote", "get-url", remote)
}
