// Package config loads, normalizes, and validates talkclip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads an optional TOML file, and honours the environment
// fallbacks the pipeline has always used: AWS_REGION, AWS_S3_BUCKET, and
// ANTHROPIC_API_KEY. The config file itself is found through TALKCLIP_CONFIG,
// ~/.config/talkclip/config.toml, or ./talkclip.toml, in that order.
//
// Always obtain settings through this package so stages receive absolute
// artifact paths and canonical log settings.
package config
