package v1

import "github.com/rs/zerolog"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	name          string
	defaultBranch string
	logger        zerolog.Logger
}

// WithName sets the repository name.
func WithName(name string) Option {
	return func(c *clientConfig) {
		c.name = name
	}
}

// WithDefaultBranch sets the name of the branch checked out at creation.
func WithDefaultBranch(branch string) Option {
	return func(c *clientConfig) {
		c.defaultBranch = branch
	}
}

// WithLogger sets the logger used for operation tracing. Defaults to a no-op
// logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
